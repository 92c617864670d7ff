package render

import (
	"bytes"
	"fmt"
	"html/template"

	epub "github.com/go-shiori/go-epub"
)

// sectionTemplate is an XHTML fragment, so void elements are self-closed
const sectionTemplate = `<h1>{{.Title}}</h1>
<p><em>{{.Meta}}</em></p>
{{range .Tweets}}<div class="tweet">
{{range paragraphs .Text}}<p>{{.}}</p>
{{end}}{{if .Links}}<ul>
{{range .Links}}<li><a href="{{linkTarget .}}">{{linkLabel .}}</a></li>
{{end}}</ul>
{{end}}{{if .CreatedAt}}<p class="stats"><small>{{.CreatedAt}}</small></p>
{{end}}</div>
<hr/>
{{end}}`

var epubSection = template.Must(template.New("section").Funcs(templateFuncs).Parse(sectionTemplate))

func writeEPUB(doc document, path string) error {
	book, err := epub.NewEpub(doc.Title)
	if err != nil {
		return fmt.Errorf("failed to create epub: %w", err)
	}
	book.SetAuthor(doc.Author)
	book.SetDescription(doc.Meta)

	var body bytes.Buffer
	if err := epubSection.Execute(&body, doc); err != nil {
		return fmt.Errorf("failed to build epub section: %w", err)
	}
	if _, err := book.AddSection(body.String(), doc.Title, "", ""); err != nil {
		return fmt.Errorf("failed to add epub section: %w", err)
	}

	return book.Write(path)
}
