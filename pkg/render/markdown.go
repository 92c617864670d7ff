package render

import (
	"bytes"
	"os"
	"text/template"
)

const markdownTemplate = `# {{.Title}}

_{{.Meta}}_
{{range .Tweets}}
---
{{range paragraphs .Text}}
{{.}}
{{end}}
{{- range .Media}}{{if eq .Type "photo"}}
![{{.AltText}}]({{.URL}})
{{end}}{{end}}
{{- range .Links}}
- [{{linkLabel .}}]({{linkTarget .}})
{{- end}}
{{if .CreatedAt}}
<sub>{{.CreatedAt}} · ♥ {{.Metrics.Likes}} · ⟲ {{.Metrics.Retweets}}</sub>
{{end}}{{end}}`

var markdownPage = template.Must(template.New("markdown").Funcs(template.FuncMap{
	"paragraphs": paragraphs,
	"linkTarget": linkTarget,
	"linkLabel":  linkLabel,
}).Parse(markdownTemplate))

func writeMarkdown(doc document, path string) error {
	var buf bytes.Buffer
	if err := markdownPage.Execute(&buf, doc); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
