package pattern

import (
	"strconv"

	tp "github.com/xlab/treeprint"
)

// Print renders a pattern as an indented tree, one node per sub-pattern.
func Print(p Pattern) string {
	printer := tp.New()
	printPattern(printer, p)
	return printer.String()
}

func printPattern(printer tp.Tree, p Pattern) {
	switch x := p.(type) {
	case nil:
		printer.AddNode("<nil>")
	case Structured:
		branch := printer.AddBranch("structured/" + strconv.Itoa(len(x.Sub)))
		for _, sub := range x.Sub {
			printPattern(branch, sub)
		}
	case Alternative:
		branch := printer.AddBranch("alternative <" + discrString(x.Discriminator) + ">")
		printPattern(branch, x.Sub)
	case Binding:
		branch := printer.AddBranch("binding " + x.Name)
		printPattern(branch, x.Sub)
	case Extractor:
		name := "?"
		if x.X != nil {
			name = x.X.Name()
		}
		branch := printer.AddBranch("extractor " + name)
		printPattern(branch, x.Sub)
	case Identifier:
		printer.AddNode("identifier " + x.Name)
	case Constant:
		printer.AddNode("constant " + x.String())
	default:
		printer.AddNode(p.String())
	}
}
