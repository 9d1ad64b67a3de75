package gen

import "text/template"

// Header is the first line of every generated file.
const Header = "// Code generated by reborrow-gen. DO NOT EDIT."

var fileTemplate = template.Must(template.New("reborrow").Parse(Header + `

package {{.PackageName}}

{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{range .Records}}
{{if $.GenerateComments}}{{if .Copy}}// IntoConst returns a copy of {{.Name}}.
{{else}}// IntoConst converts {{.Name}} into {{.ConstName}}, giving up mutable access.
{{end}}{{end}}func ({{.Recv}} {{.SelfType}}) IntoConst() {{.ConstType}} {
	{{.IntoConst}}
}

{{if $.GenerateComments}}{{if .Copy}}// ReborrowMut returns a copy of {{.Name}}.
{{else}}// ReborrowMut returns {{.Name}} with narrowed mutable access.
{{end}}{{end}}func ({{.Recv}} {{.SelfType}}) ReborrowMut() {{.SelfType}} {
	{{.ReborrowMut}}
}

{{if $.GenerateComments}}{{if .Copy}}// Reborrow returns a copy of {{.Name}}.
{{else}}// Reborrow returns a read-only {{.ConstName}} over the same data.
{{end}}{{end}}func ({{.Recv}} {{.SelfType}}) Reborrow() {{.ConstType}} {
	{{.Reborrow}}
}

{{if $.GenerateComments}}// AsGeneralizedMut is ReborrowMut.
{{end}}func ({{.Recv}} {{.SelfType}}) AsGeneralizedMut() {{.SelfType}} {
	return {{.Recv}}.ReborrowMut()
}

{{if $.GenerateComments}}// AsGeneralizedRef is Reborrow.
{{end}}func ({{.Recv}} {{.SelfType}}) AsGeneralizedRef() {{.ConstType}} {
	return {{.Recv}}.Reborrow()
}
{{end}}`))
