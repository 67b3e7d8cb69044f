package console

import (
	"html/template"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Project Manager</title>
<link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.5.1/css/all.min.css">
<style>
body{font-family:system-ui,sans-serif;margin:2rem;color:#222}
.stats{display:flex;gap:1rem;margin-bottom:1rem}
.stat{padding:.5rem 1rem;border:1px solid #ddd;border-radius:6px}
table{border-collapse:collapse;width:100%}
td,th{border-bottom:1px solid #eee;padding:.5rem;text-align:left}
.status-completed{color:#1a7f37}.status-failed{color:#cf222e}
.status-generating,.status-editing{color:#9a6700}
.notification{position:fixed;top:1rem;right:1rem;padding:.75rem 1rem;border-radius:6px;color:#fff}
.notification.success{background:#1a7f37}.notification.error{background:#cf222e}
.modal{border:1px solid #ccc;border-radius:6px;padding:1rem;margin:1rem 0;background:#fafafa}
.empty-state{padding:2rem;text-align:center;color:#777}
.loading{color:#777}
.btn{margin-right:.5rem}
</style>
</head>
<body>
<h1>Project Manager</h1>

{{with .Notice}}<div class="notification {{.Kind}}">{{.Message}}</div>{{end}}

<div class="stats">
<div class="stat">Total <strong id="totalProjects">{{.View.Counters.Total}}</strong></div>
<div class="stat">Completed <strong id="completedProjects">{{.View.Counters.Completed}}</strong></div>
<div class="stat">Failed <strong id="failedProjects">{{.View.Counters.Failed}}</strong></div>
</div>

<div class="toolbar">
<a class="btn" href="/projects/new"><i class="fas fa-plus"></i> New Project</a>
<form method="post" action="/refresh" style="display:inline"><button type="submit">Refresh</button></form>
{{if .Loading}}<span class="loading"><i class="fas fa-spinner fa-spin"></i> Loading projects...</span>{{end}}
</div>

{{if .Create.Open}}
<div class="modal" id="createModal">
<h2>Create New Project</h2>
<form method="post" action="/projects">
<textarea name="command" rows="4" cols="60" placeholder="Describe the project you want to build" required>{{.Create.Draft}}</textarea>
<div>
<button type="submit"{{if .Create.Submitting}} disabled{{end}}>{{if .Create.Submitting}}Creating...{{else}}Create Project{{end}}</button>
</div>
</form>
<form method="post" action="/projects/new/close"><button type="submit">Cancel</button></form>
</div>
{{end}}

{{if .Edit.Open}}
<div class="modal" id="editModal">
<h2>Edit Project</h2>
<p><strong>Name:</strong> <span id="editProjectName">{{.Edit.Target.Name}}</span></p>
<p><strong>Current command:</strong> <span id="editProjectCommand">{{.Edit.Target.Command}}</span></p>
<form method="post" action="/projects/{{.EditPath}}/edit">
<textarea name="command" rows="4" cols="60" placeholder="Describe the changes" required>{{.Edit.Draft}}</textarea>
<div>
<button type="submit"{{if .Edit.Submitting}} disabled{{end}}>{{if .Edit.Submitting}}Updating...{{else}}Update Project{{end}}</button>
</div>
</form>
<form method="post" action="/projects/{{.EditPath}}/edit/close"><button type="submit">Cancel</button></form>
</div>
{{end}}

{{if .View.PlaceholderVisible}}
<div class="empty-state" id="emptyState">
<i class="fas fa-folder-open"></i>
<p>No projects yet. Create your first project to get started.</p>
</div>
{{else}}
<table id="projectsTable">
<thead><tr><th>Name</th><th>Command</th><th>Status</th><th>Created</th><th>Actions</th></tr></thead>
<tbody id="projectsTableBody">{{.Rows}}</tbody>
</table>
{{end}}
</body>
</html>
`))

var confirmTemplate = template.Must(template.New("confirm").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Delete Project</title></head>
<body>
<h1>Delete Project</h1>
<p>{{.Prompt}}</p>
<p><strong>{{.Project.Name}}</strong>: {{.Project.Command}}</p>
<form method="post" action="/projects/{{.Path}}/delete">
<input type="hidden" name="confirm" value="yes">
<button type="submit"{{if .Busy}} disabled{{end}}>Delete</button>
</form>
<form method="post" action="/projects/{{.Path}}/delete">
<input type="hidden" name="confirm" value="no">
<button type="submit">Cancel</button>
</form>
</body>
</html>
`))
