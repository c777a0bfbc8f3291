package worker

import (
	"bytes"
	"fmt"
	"html/template"

	"resumade/internal/resume"
)

// renderData 是 PDF 模板的视图模型。PhotoURL 在渲染前由处理器注入预签名链接。
type renderData struct {
	Title    string
	Content  resume.Content
	PhotoURL string
}

// 模板按 templateID 选择；未识别的值在 RenderHTML 里回退到默认模板。
// 页面尺寸按 A4 @ 96 DPI，与 PreferCSSPageSize 配合。
const sharedBodyTemplate = `
    {{if .PhotoURL}}<img class="photo" src="{{.PhotoURL}}" />{{end}}
    <h1>{{.Content.PersonalInfo.FullName}}</h1>
    <p class="contact">
        {{.Content.PersonalInfo.Email}}
        {{if .Content.PersonalInfo.Phone}} · {{.Content.PersonalInfo.Phone}}{{end}}
        {{if .Content.PersonalInfo.Location}} · {{.Content.PersonalInfo.Location}}{{end}}
        {{if .Content.PersonalInfo.Website}} · {{.Content.PersonalInfo.Website}}{{end}}
    </p>
    {{if .Content.Summary}}
    <section>
        <h2>Summary</h2>
        <p>{{.Content.Summary}}</p>
    </section>
    {{end}}
    {{if .Content.Experience}}
    <section>
        <h2>Experience</h2>
        {{range .Content.Experience}}
        <div class="entry">
            <div class="entry-head"><strong>{{.Position}}</strong> — {{.Company}}</div>
            <div class="entry-dates">{{.StartDate}} – {{.EndDate}}</div>
            <p>{{.Description}}</p>
        </div>
        {{end}}
    </section>
    {{end}}
    {{if .Content.Education}}
    <section>
        <h2>Education</h2>
        {{range .Content.Education}}
        <div class="entry">
            <div class="entry-head"><strong>{{.Degree}}</strong>{{if .Field}}, {{.Field}}{{end}} — {{.School}}</div>
            <div class="entry-dates">{{.StartDate}} – {{.EndDate}}</div>
            {{if .Notes}}<p>{{.Notes}}</p>{{end}}
        </div>
        {{end}}
    </section>
    {{end}}
    {{if .Content.Skills}}
    <section>
        <h2>Skills</h2>
        <ul class="skills">
            {{range .Content.Skills}}<li>{{.Name}}{{if .Level}} ({{.Level}}){{end}}</li>{{end}}
        </ul>
    </section>
    {{end}}
`

var templateStyles = map[string]string{
	"minimal": `
        body { font-family: Helvetica, Arial, sans-serif; font-size: 10pt; color: #222; margin: 36px; }
        h1 { font-size: 22pt; margin: 0 0 4px; }
        h2 { font-size: 12pt; border-bottom: 1px solid #ddd; padding-bottom: 2px; margin: 16px 0 8px; }
        .contact { color: #666; margin: 0 0 12px; }
        .entry { margin-bottom: 10px; }
        .entry-dates { color: #888; font-size: 9pt; }
        .skills { columns: 2; margin: 0; padding-left: 18px; }
        .photo { float: right; width: 90px; height: 90px; object-fit: cover; border-radius: 4px; }`,
	"modern": `
        body { font-family: 'Segoe UI', Helvetica, sans-serif; font-size: 10pt; color: #1a2733; margin: 0; padding: 36px; }
        h1 { font-size: 24pt; margin: 0 0 4px; color: #0b5fa5; }
        h2 { font-size: 11pt; text-transform: uppercase; letter-spacing: 2px; color: #0b5fa5; margin: 18px 0 8px; }
        .contact { color: #51606c; margin: 0 0 14px; }
        .entry { margin-bottom: 12px; border-left: 3px solid #0b5fa5; padding-left: 10px; }
        .entry-dates { color: #7d8a95; font-size: 9pt; }
        .skills { list-style: none; margin: 0; padding: 0; }
        .skills li { display: inline-block; background: #eaf3fa; border-radius: 10px; padding: 2px 10px; margin: 0 6px 6px 0; }
        .photo { float: right; width: 100px; height: 100px; object-fit: cover; border-radius: 50%; }`,
	"classic": `
        body { font-family: Georgia, 'Times New Roman', serif; font-size: 11pt; color: #000; margin: 48px; }
        h1 { font-size: 20pt; text-align: center; margin: 0 0 2px; }
        h2 { font-size: 12pt; font-variant: small-caps; border-bottom: 1px solid #000; margin: 16px 0 8px; }
        .contact { text-align: center; margin: 0 0 14px; }
        .entry { margin-bottom: 10px; }
        .entry-dates { font-style: italic; font-size: 10pt; }
        .skills { margin: 0; padding-left: 20px; }
        .photo { display: none; }`,
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
@page { size: A4; margin: 0; }
%s
</style>
</head>
<body>
%s
</body>
</html>`

var pdfTemplates = func() map[string]*template.Template {
	parsed := make(map[string]*template.Template, len(templateStyles))
	for id, style := range templateStyles {
		page := fmt.Sprintf(pageTemplate, style, sharedBodyTemplate)
		parsed[id] = template.Must(template.New(id).Parse(page))
	}
	return parsed
}()

// RenderHTML 按模板 ID 渲染简历内容；未识别的 ID 回退到默认模板。
func RenderHTML(templateID string, data renderData) (string, error) {
	tmpl := pdfTemplates[resume.ResolveTemplateID(templateID)]

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template %q: %w", templateID, err)
	}
	return buf.String(), nil
}
