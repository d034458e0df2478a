package htmltable

import "html/template"

var (
	HeaderTemplate = template.Must(template.New("header").Parse(
		"<table{{if .TableClass}} class='{{.TableClass}}'{{end}}>\n" +
			"{{if .Caption}}  <caption>{{.Caption}}</caption>\n{{end}}",
	))

	RowTemplate = template.Must(template.New("row").Parse("" +
		"{{if .IsHeaderRow}}" +
		"  <tr>{{range $cell := .RawCells}}<th>{{$cell}}</th>{{end}}</tr>\n" +
		"{{else}}" +
		"  <tr>{{range $cell := .RawCells}}<td>{{$cell}}</td>{{end}}</tr>\n" +
		"{{end}}",
	))

	FooterTemplate = template.Must(template.New("footer").Parse(
		"</table>",
	))
)

type TemplateContext struct {
	TableClass string
	Caption    string
}

type RowTemplateContext struct {
	TemplateContext

	IsHeaderRow bool
	RowIndex    int
	RawCells    []template.HTML
}

// WidgetTemplate renders a *WidgetContext with the markup
// classes of the dashboard data tables.
var WidgetTemplate = template.Must(template.New("widget").Parse(`<div id="{{.ID}}-container" class="datatable-container">
{{- if .Title}}
  <h5 class="datatable-title">{{.Title}}</h5>
{{- end}}
  <div class="float-start">
    <form class="input-group dataTables_length" method="get">
      {{- range .LengthFields}}<input type="hidden" name="{{.Name}}" value="{{.Value}}">{{end}}
      <label class="input-group-text" for="{{.ID}}-len">Show per page</label>
      <select id="{{.ID}}-len" class="form-select" name="len" onchange="this.form.submit()">
        {{- range .PageSizes}}<option value="{{.Index}}"{{if .Selected}} selected{{end}}>{{.Size}}</option>{{end -}}
      </select>
    </form>
  </div>
  <div class="float-end">
    <form class="input-group dataTables_filter" method="get">
      {{- range .FilterFields}}<input type="hidden" name="{{.Name}}" value="{{.Value}}">{{end}}
      <input type="search" class="form-control" name="q" value="{{.Filter}}" placeholder="Search" aria-controls="{{.ID}}">
    </form>
  </div>
  <div class="float-start dataTables_columns">
    <details>
      <summary>Visible columns</summary>
      <ul class="list-unstyled">
        {{- range .Columns}}
        <li><a href="{{.Href}}">{{if .Visible}}&#9745;{{else}}&#9744;{{end}} {{.Title}}</a></li>
        {{- end}}
        {{- if .ShowAll}}
        <li><a href="{{.ShowAll}}">Show all</a></li>
        {{- end}}
      </ul>
    </details>
  </div>
  <table id="{{.ID}}" class="{{.TableClass}}" style="width: 100%">
    <thead id="{{.ID}}-head">
      <tr>
        {{- range .Header}}<th><a href="{{.Href}}">{{.Title}} <span class="float-end {{.SortClass}}">{{.Icon}}</span></a></th>{{end -}}
      </tr>
    </thead>
    <tbody id="{{.ID}}-body">
    {{- $accent := .AccentClass}}
    {{- $numVisible := .NumVisible}}
    {{- range $row := .Rows}}
      <tr>
        {{- range $i, $cell := $row.Cells}}<td>
          {{- if and (eq $i 0) $row.Expandable}}<a class="{{$accent}} expand-toggle" href="{{$row.ToggleHref}}">{{if $row.Expanded}}&#8863;{{else}}&#8862;{{end}}</a> {{end}}
          {{- $cell}}</td>{{end -}}
      </tr>
      {{- if $row.Expanded}}
      <tr class="datatable-details">
        <td colspan="{{$numVisible}}">
          <ul class="list-unstyled">
            {{- range $row.Details}}
            <li><b>{{.Title}}:</b> {{.Value}}</li>
            {{- end}}
          </ul>
        </td>
      </tr>
      {{- end}}
    {{- end}}
    </tbody>
  </table>
  <div class="float-start dataTables_info" role="status" aria-live="polite">Showing {{.Info.From}} to {{.Info.To}} of {{.Info.Total}} entries</div>
  <div class="float-end dataTables_paginate paging_full_numbers">
    <ul class="pagination">
      <li class="page-item{{if not .HasPrev}} disabled{{end}}"><a class="page-link first" href="{{.First}}">&laquo;</a></li>
      <li class="page-item{{if not .HasPrev}} disabled{{end}}"><a class="page-link previous" href="{{.Prev}}">&lsaquo;</a></li>
      {{- $accentBg := .AccentBgClass}}
      {{- range .Pages}}
      <li class="page-item{{if .Selected}} active{{end}}"><a class="page-link{{if .Selected}} {{$accentBg}}{{end}}" href="{{.Href}}">{{.Number}}</a></li>
      {{- end}}
      <li class="page-item{{if not .HasNext}} disabled{{end}}"><a class="page-link next" href="{{.Next}}">&rsaquo;</a></li>
      <li class="page-item{{if not .HasNext}} disabled{{end}}"><a class="page-link last" href="{{.Last}}">&raquo;</a></li>
    </ul>
  </div>
</div>
`))

// PlaceholderTemplate renders a *PlaceholderContext
// while the data of a widget is loading or failed to load.
var PlaceholderTemplate = template.Must(template.New("placeholder").Parse(`<div id="{{.ID}}-container" class="datatable-container">
{{- if .Loading}}
  <div class="page-loader {{.AccentClass}}" role="status">Loading...</div>
{{- else}}
  <div class="alert alert-danger {{.AccentClass}}" role="alert">Failed to load table: {{.Error}}</div>
{{- end}}
</div>
`))

type PlaceholderContext struct {
	ID          string
	Loading     bool
	Error       string
	AccentClass string
}
