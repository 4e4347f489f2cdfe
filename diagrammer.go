package graalmk

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"git.fractalqb.de/fractalqb/graalmk/mkore"
)

// Diagrammer writes the goals and actions of a project as Graphviz graph.
type Diagrammer struct {
	RankDir string
}

func (dia *Diagrammer) WriteDot(w io.Writer, prj *mkore.Project) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = panicErr(p)
		}
	}()
	dia.startDot(w, prj)
	for _, g := range prj.Goals() {
		dia.goal(w, g)
	}
	for _, a := range prj.Actions() {
		dia.action(w, a)
	}
	fmt.Fprintln(w, "}")
	return nil
}

func (dia *Diagrammer) startDot(w io.Writer, prj *mkore.Project) {
	fmt.Fprintf(w, "digraph \"%s\" {\n", escDotID(prj.Name()))
	if dia.RankDir != "" {
		fmt.Fprintf(w, "\trankdir=\"%s\"\n", escDotID(dia.RankDir))
	}
}

func (dia *Diagrammer) goal(w io.Writer, g *mkore.Goal) {
	bold := len(g.ResultOf()) == 0 || len(g.PremiseOf()) == 0
	switch atf := g.Artefact.(type) {
	case mkore.Abstract:
		style := "dashed"
		if bold {
			style += ",bold"
		}
		fmt.Fprintf(w, "\t\"%p\" [shape=box,style=\"%s\",label=\"%s\"];\n",
			g,
			style,
			escDotID(g.Name()),
		)
		return
	case Task:
		fmt.Fprintf(w, "\t\"%p\" [shape=box,style=\"dashed,bold\",label=\"%s:%s\",tooltip=\"%s\"];\n",
			g,
			escDotID(atf.Group),
			escDotID(g.Name()),
			escDotID(atf.Description),
		)
		return
	}
	var style string
	if bold {
		style = ",style=bold"
	}
	fmt.Fprintf(w, "\t\"%p\" [shape=record%s,label=\"{%s|%s}\"];\n",
		g,
		style,
		reflect.Indirect(reflect.ValueOf(g.Artefact)).Type().Name(),
		escDotRecord(g.Name()),
	)
}

func (dia *Diagrammer) action(w io.Writer, a *mkore.Action) {
	if a.IsImplicit() {
		if len(a.Results()) == 1 && len(a.Premises()) == 1 {
			fmt.Fprintf(w, "\t\"%p\" -> \"%p\" [style=dashed];\n", a.Premise(0), a.Result(0))
			return
		}
		fmt.Fprintf(w, "\t\"%p\" [shape=point];\n", a)
		for _, pre := range a.Premises() {
			fmt.Fprintf(w, "\t\"%p\" -> \"%p\" [style=dashed,arrowhead=none];\n", pre, a)
		}
		for _, res := range a.Results() {
			fmt.Fprintf(w, "\t\"%p\" -> \"%p\" [style=dashed];\n", a, res)
		}
		return
	}
	style := "rounded"
	if len(a.Premises()) == 0 {
		style += ",bold"
	}
	fmt.Fprintf(w, "\t\"%p\" [shape=box,style=\"%s\",label=\"%s\"];\n",
		a,
		style,
		escDotID(a.String()),
	)
	for _, pre := range a.Premises() {
		fmt.Fprintf(w, "\t\"%p\" -> \"%p\";\n", pre, a)
	}
	for _, res := range a.Results() {
		fmt.Fprintf(w, "\t\"%p\" -> \"%p\";\n", a, res)
	}
}

func escDotID(id string) string {
	return strings.ReplaceAll(id, "\"", "\\\"")
}

var recordEscaper = strings.NewReplacer(
	"\"", "\\\"",
	"{", "\\{", "}", "\\}",
	"|", "\\|",
	"<", "\\<", ">", "\\>",
)

func escDotRecord(s string) string { return recordEscaper.Replace(s) }
