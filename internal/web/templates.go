package web

import "html/template"

// boardTemplate renders the full board page. Card bodies arrive as
// pre-rendered HTML from the markdown pass, hence the safe helper.
var boardTemplate = template.Must(template.New("board").Funcs(template.FuncMap{
	"safe": func(s string) template.HTML { return template.HTML(s) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: sans-serif; margin: 1rem; background: #f9fafb; }
  h1 { font-size: 1.4rem; }
  .board { display: flex; gap: 1rem; align-items: flex-start; }
  .column { flex: 1; border-radius: 6px; padding: 0.5rem; background: #f3f4f6; }
  .column h2 { font-size: 1rem; padding: 0.4rem; border-radius: 4px; }
  .card { background: white; border: 1px solid #e5e7eb; border-radius: 4px;
          padding: 0.5rem; margin-bottom: 0.5rem; }
  .card .title { font-weight: 600; }
  .card .meta { color: #6b7280; font-size: 0.8rem; }
  .priority-critical { border-left: 4px solid #dc2626; }
  .priority-high { border-left: 4px solid #f59e0b; }
  .priority-medium { border-left: 4px solid #3b82f6; }
  .priority-low { border-left: 4px solid #9ca3af; }
  .label { display: inline-block; background: #e5e7eb; border-radius: 8px;
           font-size: 0.7rem; padding: 0 0.4rem; margin-right: 0.2rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">Updated {{.LastUpdated.Format "2006-01-02 15:04 MST"}} — {{.TotalCards}} cards</p>
<div class="board">
{{range .Columns}}
  <div class="column" id="{{.ID}}">
    <h2 style="background: {{.Color}}">{{.Title}} ({{len .Cards}})</h2>
    {{range .Cards}}
    <div class="card priority-{{.Priority}}">
      <div class="title">#{{.IssueID}} {{.Title}}</div>
      {{if .Assignee}}<div class="meta">assigned to {{.Assignee}}</div>{{end}}
      <div class="body">{{safe .BodyHTML}}</div>
      <div>{{range .Labels}}<span class="label">{{.}}</span>{{end}}</div>
    </div>
    {{end}}
  </div>
{{end}}
</div>
</body>
</html>
`))
