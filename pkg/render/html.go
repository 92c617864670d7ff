package render

import (
	"bytes"
	"html/template"
	"os"
)

var templateFuncs = template.FuncMap{
	"paragraphs": paragraphs,
	"linkTarget": linkTarget,
	"linkLabel":  linkLabel,
}

const tweetsTemplate = `{{define "tweets"}}
<header>
  <h1>{{.Title}}</h1>
  <p class="meta">{{.Meta}}</p>
</header>
{{range .Tweets}}
<article class="tweet" id="tweet-{{.ID}}">
  {{range paragraphs .Text}}<p>{{.}}</p>
  {{end}}
  {{- range .Media}}{{if eq .Type "photo"}}<img src="{{.URL}}" alt="{{.AltText}}" />
  {{end}}{{end}}
  {{- if .Links}}<ul class="links">
    {{range .Links}}<li><a href="{{linkTarget .}}">{{linkLabel .}}</a></li>
    {{end}}</ul>{{end}}
  <p class="stats">{{if .CreatedAt}}{{.CreatedAt}} · {{end}}♥ {{.Metrics.Likes}} · ⟲ {{.Metrics.Retweets}}</p>
</article>
<hr />
{{end}}
{{end}}`

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>{{.Title}}</title>
<style>
body { font-family: Georgia, serif; max-width: 40em; margin: 2em auto; line-height: 1.5; padding: 0 1em; }
.meta, .stats { color: #666; font-size: 0.85em; }
img { max-width: 100%; }
</style>
</head>
<body>
{{template "tweets" .}}
</body>
</html>
`

const docTemplate = `<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:w="urn:schemas-microsoft-com:office:word" xmlns="http://www.w3.org/TR/REC-html40">
<head>
<meta charset="utf-8" />
<meta name="ProgId" content="Word.Document" />
<title>{{.Title}}</title>
</head>
<body>
{{template "tweets" .}}
</body>
</html>
`

var (
	htmlPage = template.Must(template.Must(template.New("html").Funcs(templateFuncs).Parse(tweetsTemplate)).Parse(htmlTemplate))
	docPage  = template.Must(template.Must(template.New("doc").Funcs(templateFuncs).Parse(tweetsTemplate)).Parse(docTemplate))
)

func writeHTML(doc document, path string) error {
	return executeToFile(htmlPage, doc, path)
}

// writeDOC writes Word-compatible HTML, which Word and Kindle both open as a .doc
func writeDOC(doc document, path string) error {
	return executeToFile(docPage, doc, path)
}

func executeToFile(t *template.Template, doc document, path string) error {
	var buf bytes.Buffer
	if err := t.Execute(&buf, doc); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
