package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/tably/tably/internal/config"
	"github.com/tably/tably/internal/dataframe"
	"github.com/tably/tably/internal/export"
	"github.com/tably/tably/internal/loader"
	"github.com/tably/tably/internal/models"
	"github.com/tably/tably/internal/plot"
	"github.com/tably/tably/internal/session"
	"github.com/tably/tably/internal/stats"
	"github.com/tably/tably/internal/ui/components"
	"github.com/tably/tably/internal/ui/help"
	"github.com/tably/tably/internal/ui/theme"
)

// App is the main application model
type App struct {
	config *config.Config
	theme  theme.Theme

	width  int
	height int

	focused models.PanelType
	mode    models.ViewMode

	sess  *session.Session
	coord *loader.Coordinator

	leftPanel  components.Panel
	rightPanel components.Panel

	tableList    *components.TableList
	tableView    *components.TableView
	searchInput  *components.SearchInput
	columnPicker *components.ColumnPicker
	resultsView  *components.ResultsView
	errorOverlay *components.ErrorOverlay
	analysisMenu *components.AnalysisMenu
	menuOpen     bool

	// Open-file prompt
	openInput  textinput.Model
	openPrompt bool

	pendingAnalysis components.AnalysisKind

	// Load progress: the spinner overlay appears only when a load
	// outlives the configured threshold.
	loading      bool
	showProgress bool
	spin         spinner.Model

	totalPages  int
	status      string
	pendingPath string
}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Title   string
	Message string
}

// SourceOpenedMsg is sent when a file has been opened in the background
type SourceOpenedMsg struct {
	Sess *session.Session
	Path string
	Err  error
}

// PageLoadedMsg carries one computed display page. The token ties it
// to the load generation it belongs to; stale results are discarded.
type PageLoadedMsg struct {
	Tok  *loader.Token
	Page dataframe.Page
	Err  error
}

// AnalysisDoneMsg is sent when a background analysis finishes
type AnalysisDoneMsg struct {
	Title   string
	Content string
	Err     error
}

// progressTimeoutMsg fires when a load has run longer than the
// progress threshold.
type progressTimeoutMsg struct {
	gen uint64
}

// New creates a new App instance. An empty path starts at the
// open-file prompt.
func New(cfg *config.Config, path string) *App {
	if cfg == nil {
		cfg = config.GetDefaults()
	}
	th := theme.GetTheme(cfg.UI.Theme)

	ti := textinput.New()
	ti.Placeholder = "Path to .sqlite / .db / .xlsx / .csv file..."
	ti.CharLimit = 512
	ti.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(th.Info)

	tv := components.NewTableView(th)
	if cfg.Data.MaxCellDisplayLength > 0 {
		tv.MaxCellLength = cfg.Data.MaxCellDisplayLength
	}
	if cfg.Data.PlotSampleLimit > 0 {
		plot.SampleLimit = cfg.Data.PlotSampleLimit
	}

	app := &App{
		config:       cfg,
		theme:        th,
		focused:      models.LeftPanel,
		mode:         models.NormalMode,
		coord:        loader.NewCoordinator(),
		tableList:    components.NewTableList(th),
		tableView:    tv,
		searchInput:  components.NewSearchInput(th),
		columnPicker: components.NewColumnPicker(th),
		resultsView:  components.NewResultsView(th),
		errorOverlay: components.NewErrorOverlay(th),
		analysisMenu: components.NewAnalysisMenu(th),
		openInput:    ti,
		spin:         sp,
		leftPanel: components.Panel{
			Title:       "Tables",
			BorderColor: th.Border,
			FocusColor:  th.BorderFocused,
			Focused:     true,
		},
		rightPanel: components.Panel{
			Title:       "Data",
			BorderColor: th.Border,
			FocusColor:  th.BorderFocused,
		},
	}
	app.updatePanelDimensions()

	if path != "" {
		app.status = "Opening " + path
	} else {
		app.openPrompt = true
		app.openInput.Focus()
	}
	app.pendingPath = path
	return app
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.pendingPath != "" {
		return openSource(a.pendingPath)
	}
	return textinput.Blink
}

// openSource opens the file off the UI goroutine
func openSource(path string) tea.Cmd {
	return func() tea.Msg {
		sess, err := session.Open(path)
		return SourceOpenedMsg{Sess: sess, Path: path, Err: err}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ErrorMsg:
		a.ShowError(msg.Title, msg.Message)
		return a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resultsView.SetSize(msg.Width, msg.Height)
		a.updatePanelDimensions()
		return a, nil

	case SourceOpenedMsg:
		return a.handleSourceOpened(msg)

	case PageLoadedMsg:
		return a.handlePageLoaded(msg)

	case AnalysisDoneMsg:
		a.status = ""
		if msg.Err != nil {
			a.ShowError("Analysis Failed", msg.Err.Error())
			return a, nil
		}
		a.resultsView.SetContent(msg.Title, msg.Content)
		a.mode = models.ResultsMode
		return a, nil

	case progressTimeoutMsg:
		if a.loading && msg.gen == a.coord.Generation() {
			a.showProgress = true
			return a, a.spin.Tick
		}
		return a, nil

	case spinner.TickMsg:
		if !a.showProgress {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case components.TableSelectedMsg:
		if a.sess == nil {
			return a, nil
		}
		// The outgoing table keeps its column layout
		if old := a.sess.State.Table; old != "" && old != msg.Table {
			a.sess.SetLayout(old, models.ColumnLayout{Widths: a.tableView.CurrentWidths()})
		}
		a.tableList.Current = msg.Table
		a.sess.State = models.NewViewState(msg.Table, a.config.Data.PageSize)
		a.focused = models.RightPanel
		a.updatePanelFocus()
		return a, a.startLoad()

	case components.SearchInputMsg:
		a.mode = models.NormalMode
		if a.sess == nil {
			return a, nil
		}
		a.sess.State.SetQuery(msg.Query)
		return a, a.startLoad()

	case components.CloseSearchMsg:
		a.mode = models.NormalMode
		// Dismissing the search box also clears the filter
		if a.sess != nil && a.sess.State.Query != "" {
			a.sess.State.SetQuery("")
			return a, a.startLoad()
		}
		return a, nil

	case components.AnalysisChosenMsg:
		a.menuOpen = false
		return a.openColumnPicker(msg.Kind)

	case components.CloseAnalysisMenuMsg:
		a.menuOpen = false
		return a, nil

	case components.ColumnsPickedMsg:
		a.mode = models.NormalMode
		a.status = "Running analysis..."
		return a, a.runAnalysis(a.pendingAnalysis, msg.Columns)

	case components.CloseColumnPickerMsg:
		a.mode = models.NormalMode
		return a, nil

	case components.CloseResultsMsg:
		a.mode = models.NormalMode
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.mode == models.ResultsMode {
		var cmd tea.Cmd
		a.resultsView, cmd = a.resultsView.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Error overlay eats everything except dismissal and quit
	if a.errorOverlay.Visible {
		switch msg.String() {
		case "esc", "enter":
			a.errorOverlay.Clear()
		case "q", "ctrl+c":
			return a, tea.Quit
		}
		return a, nil
	}

	if a.openPrompt {
		return a.handleOpenPrompt(msg)
	}

	switch a.mode {
	case models.SearchMode:
		var cmd tea.Cmd
		a.searchInput, cmd = a.searchInput.Update(msg)
		return a, cmd
	case models.PickerMode:
		var cmd tea.Cmd
		a.columnPicker, cmd = a.columnPicker.Update(msg)
		return a, cmd
	case models.ResultsMode:
		var cmd tea.Cmd
		a.resultsView, cmd = a.resultsView.Update(msg)
		return a, cmd
	case models.HelpMode:
		switch msg.String() {
		case "?", "esc", "q":
			a.mode = models.NormalMode
		case "ctrl+c":
			return a, tea.Quit
		}
		return a, nil
	}

	if a.menuOpen {
		var cmd tea.Cmd
		a.analysisMenu, cmd = a.analysisMenu.Update(msg)
		return a, cmd
	}

	return a.handleNormalKey(msg)
}

func (a *App) handleOpenPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		// Without an open source there is nothing to fall back to
		if a.sess != nil {
			a.openPrompt = false
		}
		return a, nil
	case "enter":
		path := strings.TrimSpace(a.openInput.Value())
		if path == "" {
			return a, nil
		}
		a.status = "Opening " + path
		return a, openSource(path)
	}
	var cmd tea.Cmd
	a.openInput, cmd = a.openInput.Update(msg)
	return a, cmd
}

func (a *App) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "?":
		a.mode = models.HelpMode
		return a, nil
	case "o":
		a.openPrompt = true
		a.openInput.SetValue("")
		a.openInput.Focus()
		return a, textinput.Blink
	case "tab":
		if a.focused == models.LeftPanel {
			a.focused = models.RightPanel
		} else {
			a.focused = models.LeftPanel
		}
		a.updatePanelFocus()
		return a, nil
	case "r", "f5":
		if a.sess != nil {
			a.sess.Invalidate()
			return a, a.startLoad()
		}
		return a, nil
	case "/":
		if a.sess != nil {
			a.mode = models.SearchMode
			a.searchInput.Reset()
			a.searchInput.Input.SetValue(a.sess.State.Query)
			a.searchInput.Input.Focus()
			return a, textinput.Blink
		}
		return a, nil
	case "d":
		if a.sess != nil {
			a.menuOpen = true
			a.analysisMenu.Reset()
		}
		return a, nil
	}

	if a.focused == models.LeftPanel {
		var cmd tea.Cmd
		a.tableList, cmd = a.tableList.Update(msg)
		return a, cmd
	}
	return a.handleTableKey(msg)
}

func (a *App) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.sess == nil {
		return a, nil
	}
	st := &a.sess.State
	switch msg.String() {
	case "up", "k":
		a.tableView.MoveSelection(-1)
	case "down", "j":
		a.tableView.MoveSelection(1)
	case "left", "h":
		a.tableView.MoveColumn(-1)
	case "right", "l":
		a.tableView.MoveColumn(1)
	case "g":
		a.tableView.JumpToRow(0)
	case "G":
		a.tableView.JumpToRow(len(a.tableView.Rows) - 1)
	case "s":
		if col := a.tableView.CurrentColumn(); col != "" {
			st.CycleSort(col)
			return a, a.startLoad()
		}
	case "n", "pgdown":
		st.Advance(1, a.totalPages)
		return a, a.startLoad()
	case "p", "pgup":
		st.Advance(-1, a.totalPages)
		return a, a.startLoad()
	case "z":
		st.SetPageSize(models.NextPageSize(st.PageSize))
		return a, a.startLoad()
	case "v":
		a.tableView.ToggleRowSelection()
	case "a":
		a.tableView.SelectAll()
	case "esc":
		a.tableView.ClearSelection()
	case "c":
		rows := a.tableView.SelectedRows()
		n, err := export.CopyRowsTSV(rows)
		if err != nil {
			a.ShowError("Copy Failed", err.Error())
			return a, nil
		}
		a.status = fmt.Sprintf("Copied %d row(s)", n)
	case "e":
		a.exportView("csv")
	case "E":
		a.exportView("json")
	case "w":
		a.sess.SetLayout(st.Table, models.ColumnLayout{Widths: a.tableView.CurrentWidths()})
		a.status = "Column layout saved for " + st.Table
	case "W":
		a.sess.SetLayout(st.Table, models.ColumnLayout{})
		a.tableView.ResetWidths()
		a.status = "Column layout reset"
	}
	return a, nil
}

func (a *App) handleSourceOpened(msg SourceOpenedMsg) (tea.Model, tea.Cmd) {
	a.status = ""
	if msg.Err != nil {
		a.ShowError("Open Failed", msg.Err.Error())
		if a.sess == nil {
			a.openPrompt = true
		}
		return a, nil
	}
	a.openPrompt = false
	a.sess = msg.Sess
	tables := a.sess.Tables()
	a.tableList.SetTables(tables)
	if len(tables) == 0 {
		return a, nil
	}
	first := tables[0]
	a.tableList.Current = first
	a.sess.State = models.NewViewState(first, a.config.Data.PageSize)
	a.focused = models.RightPanel
	a.updatePanelFocus()
	return a, a.startLoad()
}

func (a *App) handlePageLoaded(msg PageLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Tok.Stale() {
		// A newer load owns the screen now
		return a, nil
	}
	a.loading = false
	a.showProgress = false
	if msg.Err != nil {
		if errors.Is(msg.Err, loader.ErrSuperseded) {
			return a, nil
		}
		a.ShowError("Load Failed", msg.Err.Error())
		// Clear the grid; other tables stay selectable
		a.tableView.SetPage(nil, nil, 1, 0, 0, a.sess.State.PageSize)
		a.totalPages = 0
		return a, nil
	}
	if msg.Page.TotalPages > 0 && msg.Page.Number > msg.Page.TotalPages {
		// The filter shrank the view below the current page
		a.sess.State.Page = 1
		return a, a.startLoad()
	}
	a.totalPages = msg.Page.TotalPages
	a.tableView.SetPage(
		msg.Page.Columns,
		renderRows(msg.Page.Rows),
		msg.Page.Number,
		msg.Page.TotalPages,
		msg.Page.TotalRows,
		msg.Page.Size,
	)
	a.tableView.SetSort(a.sess.State.SortColumn, a.sess.State.Ascending)
	a.tableView.ApplyWidths(a.sess.Layout(a.sess.State.Table).Widths)
	a.status = ""
	if msg.Page.TotalRows == 0 {
		a.status = "No data found in " + a.sess.State.Table
	}
	return a, nil
}

// startLoad kicks off a background page computation for the current
// view state and arms the progress timer. Any load already in flight
// becomes stale immediately.
func (a *App) startLoad() tea.Cmd {
	st := a.sess.State
	key := dataframe.ViewKey{
		Table:      st.Table,
		SortColumn: st.SortColumn,
		Ascending:  st.Ascending,
		Query:      st.Query,
	}
	tok := a.coord.Begin()
	a.loading = true
	a.showProgress = false

	sess := a.sess
	number, size := st.Page, st.PageSize
	load := func() tea.Msg {
		page, err := loader.Do(tok, func() (dataframe.Page, error) {
			return sess.Page(key, number, size, tok)
		})
		return PageLoadedMsg{Tok: tok, Page: page, Err: err}
	}

	gen := tok.Generation()
	threshold := time.Duration(a.config.Data.ProgressThresholdMs) * time.Millisecond
	if threshold <= 0 {
		threshold = 600 * time.Millisecond
	}
	timeout := tea.Tick(threshold, func(time.Time) tea.Msg {
		return progressTimeoutMsg{gen: gen}
	})
	return tea.Batch(load, timeout)
}

func renderRows(rows [][]dataframe.Value) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = v.Text()
		}
		out[i] = cells
	}
	return out
}

// openColumnPicker readies the column picker for an analysis.
// Descriptive statistics accepts any column; every other analysis
// needs numeric input.
func (a *App) openColumnPicker(kind components.AnalysisKind) (tea.Model, tea.Cmd) {
	frame, err := a.sess.Frame(a.sess.State.Table)
	if err != nil {
		a.ShowError("Analysis Failed", err.Error())
		return a, nil
	}
	candidates := frame.NumericColumns()
	if kind == components.AnalysisDescribe {
		candidates = frame.Columns()
	}
	if len(candidates) == 0 {
		a.ShowError("Analysis Failed", "The table has no numeric columns")
		return a, nil
	}

	minCols, maxCols := 1, 0
	switch kind {
	case components.AnalysisHistogram, components.AnalysisFit:
		minCols, maxCols = 1, 1
	case components.AnalysisScatter, components.AnalysisRegression:
		minCols, maxCols = 2, 2
	case components.AnalysisCorrelation, components.AnalysisANOVA:
		minCols, maxCols = 2, 0
	}
	if len(candidates) < minCols {
		a.ShowError("Analysis Failed",
			fmt.Sprintf("%s needs at least %d numeric columns", kind, minCols))
		return a, nil
	}

	a.pendingAnalysis = kind
	a.columnPicker.SetColumns(kind.String(), candidates, minCols, maxCols)
	a.mode = models.PickerMode
	return a, nil
}

// runAnalysis computes the chosen analysis over the full table,
// ignoring the current filter, off the UI goroutine.
func (a *App) runAnalysis(kind components.AnalysisKind, cols []string) tea.Cmd {
	sess := a.sess
	table := sess.State.Table
	return func() tea.Msg {
		frame, err := sess.Frame(table)
		if err != nil {
			return AnalysisDoneMsg{Err: err}
		}
		content, err := computeAnalysis(kind, frame, cols)
		return AnalysisDoneMsg{Title: kind.String(), Content: content, Err: err}
	}
}

func computeAnalysis(kind components.AnalysisKind, frame *dataframe.Frame, cols []string) (string, error) {
	switch kind {
	case components.AnalysisDescribe:
		var parts []string
		kinds := frame.Kinds()
		for _, col := range cols {
			idx := frame.ColumnIndex(col)
			if idx < 0 {
				return "", fmt.Errorf("no such column %q", col)
			}
			switch kinds[idx] {
			case dataframe.KindNumber, dataframe.KindTime:
				xs, err := frame.FloatColumn(col)
				if err != nil {
					return "", err
				}
				d, err := stats.Describe(col, xs)
				if err != nil {
					return "", err
				}
				parts = append(parts, d.String())
			default:
				values, err := frame.TextColumn(col)
				if err != nil {
					return "", err
				}
				d, err := stats.DescribeCategorical(col, values)
				if err != nil {
					return "", err
				}
				parts = append(parts, d.String())
			}
		}
		return strings.Join(parts, "\n\n"), nil

	case components.AnalysisHistogram:
		xs, err := frame.FloatColumn(cols[0])
		if err != nil {
			return "", err
		}
		h, err := stats.Histogram(cols[0], xs)
		if err != nil {
			return "", err
		}
		path := plotPath("hist", cols[0])
		if err := plot.SaveHistogram(cols[0], xs, len(h.Counts), path); err != nil {
			return "", err
		}
		return asciiHistogram(h) + "\n\nSaved plot: " + path, nil

	case components.AnalysisScatter:
		pair, err := frame.FloatColumns(cols)
		if err != nil {
			return "", err
		}
		path := plotPath("scatter", cols[0]+"_"+cols[1])
		if err := plot.SaveScatter(cols[0], cols[1], pair[0], pair[1], path); err != nil {
			return "", err
		}
		return fmt.Sprintf("Scatter of %q against %q over %d complete rows.\n\nSaved plot: %s",
			cols[1], cols[0], len(pair[0]), path), nil

	case components.AnalysisCorrelation:
		data, err := frame.FloatColumns(cols)
		if err != nil {
			return "", err
		}
		m, err := stats.Correlate(cols, data)
		if err != nil {
			return "", err
		}
		path := plotPath("corr", strings.Join(cols, "_"))
		if err := plot.SaveCorrelationHeatmap(m, path); err != nil {
			return "", err
		}
		return m.String() + "\n\nSaved heatmap: " + path, nil

	case components.AnalysisFit:
		xs, err := frame.FloatColumn(cols[0])
		if err != nil {
			return "", err
		}
		s, err := stats.FitBestDistribution(cols[0], xs)
		if err != nil {
			return "", err
		}
		return s.String(), nil

	case components.AnalysisRegression:
		pair, err := frame.FloatColumns(cols)
		if err != nil {
			return "", err
		}
		r, err := stats.LinearRegression(cols[0], cols[1], pair[0], pair[1])
		if err != nil {
			return "", err
		}
		return r.String(), nil

	case components.AnalysisANOVA:
		groups := make([][]float64, len(cols))
		for i, col := range cols {
			xs, err := frame.FloatColumn(col)
			if err != nil {
				return "", err
			}
			groups[i] = xs
		}
		res, err := stats.OneWayANOVA(cols, groups)
		if err != nil {
			return "", err
		}
		return res.String(), nil
	}
	return "", fmt.Errorf("unknown analysis")
}

// asciiHistogram renders the bins as horizontal bars for the results
// overlay.
func asciiHistogram(h stats.HistogramData) string {
	const barWidth = 40
	maxCount := h.MaxCount()
	if maxCount == 0 {
		maxCount = 1
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Histogram of %q (%d bins)\n\n", h.Column, len(h.Counts))
	for i, count := range h.Counts {
		bar := strings.Repeat("█", count*barWidth/maxCount)
		fmt.Fprintf(&b, "%12.4g │%-*s %d\n", h.Edges[i], barWidth, bar, count)
	}
	return b.String()
}

func plotPath(prefix, name string) string {
	return fmt.Sprintf("tably_%s_%s.png", prefix, sanitizeName(name))
}

func sanitizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
}

// exportView writes the whole filtered/sorted view to a file next to
// the working directory.
func (a *App) exportView(format string) {
	st := a.sess.State
	key := dataframe.ViewKey{
		Table:      st.Table,
		SortColumn: st.SortColumn,
		Ascending:  st.Ascending,
		Query:      st.Query,
	}
	view, err := a.sess.View(key)
	if err != nil {
		a.ShowError("Export Failed", err.Error())
		return
	}
	columns := view.Frame.Columns()
	rows := make([][]string, 0, view.TotalRows())
	for _, idx := range view.RowIndices() {
		row := view.Frame.Row(idx)
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = v.Text()
		}
		rows = append(rows, cells)
	}

	path := fmt.Sprintf("%s_export.%s", sanitizeName(st.Table), format)
	switch format {
	case "json":
		err = export.ExportViewJSON(columns, rows, path)
	default:
		err = export.ExportViewCSV(columns, rows, path)
	}
	if err != nil {
		a.ShowError("Export Failed", err.Error())
		return
	}
	a.status = fmt.Sprintf("Exported %d row(s) to %s", len(rows), path)
}

// View implements tea.Model
func (a *App) View() string {
	if a.errorOverlay.Visible {
		return a.centered(a.errorOverlay.View())
	}
	if a.openPrompt {
		return a.centered(a.renderOpenPrompt())
	}
	switch a.mode {
	case models.HelpMode:
		return help.Render(a.width, a.height, lipgloss.NewStyle())
	case models.PickerMode:
		return a.centered(a.columnPicker.View())
	case models.ResultsMode:
		return a.centered(a.resultsView.View())
	}
	if a.menuOpen {
		return a.centered(a.analysisMenu.View())
	}
	if a.showProgress {
		return a.centered(a.renderProgress())
	}

	base := a.renderNormalView()
	if a.mode == models.SearchMode {
		a.searchInput.Width = a.width - 8
		return lipgloss.Place(
			a.width, a.height,
			lipgloss.Center, lipgloss.Bottom,
			a.searchInput.View(),
		)
	}
	return base
}

func (a *App) centered(overlay string) string {
	return lipgloss.Place(
		a.width, a.height,
		lipgloss.Center, lipgloss.Center,
		overlay,
	)
}

func (a *App) renderOpenPrompt() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(a.theme.Info)
	helpStyle := lipgloss.NewStyle().Foreground(a.theme.Metadata).Italic(true)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.theme.BorderFocused).
		Padding(1, 2).
		Width(60)

	content := titleStyle.Render("Open a data file") + "\n\n" +
		a.openInput.View() + "\n\n" +
		helpStyle.Render("Enter: open │ Esc: cancel │ Ctrl+C: quit")
	return boxStyle.Render(content)
}

func (a *App) renderProgress() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.theme.BorderFocused).
		Padding(1, 3)
	return boxStyle.Render(a.spin.View() + " Loading...")
}

// renderNormalView renders the two-panel layout with status bars
func (a *App) renderNormalView() string {
	title := "tably"
	right := "? help"
	if a.sess != nil {
		title = "tably │ " + a.sess.Source().Path()
		right = a.contextLine()
	}
	topBar := lipgloss.NewStyle().
		Width(a.width).
		Background(a.theme.BorderFocused).
		Foreground(lipgloss.Color("230")).
		Padding(0, 2).
		Render(a.formatStatusBar(title, right))

	bottomLeft := "[tab] panel │ [/] search │ [s] sort │ [n/p] page │ [d] analyses │ [q] quit"
	bottomBar := lipgloss.NewStyle().
		Width(a.width).
		Background(a.theme.Selection).
		Foreground(a.theme.Foreground).
		Padding(0, 2).
		Render(a.formatStatusBar(bottomLeft, a.status))

	a.tableList.Width = a.leftPanel.Width
	a.tableList.Height = a.leftPanel.Height
	a.leftPanel.Content = a.tableList.View()

	a.tableView.Width = a.rightPanel.Width
	a.tableView.Height = a.rightPanel.Height
	a.rightPanel.Content = a.tableView.View()

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.leftPanel.View(),
		a.rightPanel.View(),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		topBar,
		panels,
		bottomBar,
	)
}

// contextLine summarizes the active table, sort, and filter for the
// top bar.
func (a *App) contextLine() string {
	st := a.sess.State
	parts := []string{st.Table}
	if st.SortColumn != "" {
		dir := "▲"
		if !st.Ascending {
			dir = "▼"
		}
		parts = append(parts, "sort "+st.SortColumn+dir)
	}
	if st.Query != "" {
		parts = append(parts, fmt.Sprintf("filter %q", st.Query))
	}
	return strings.Join(parts, " │ ")
}

// updatePanelDimensions calculates panel sizes based on window size
func (a *App) updatePanelDimensions() {
	if a.width <= 0 || a.height <= 0 {
		return
	}

	contentHeight := a.height - 2
	if contentHeight < 5 {
		contentHeight = 5
	}

	ratio := a.config.UI.PanelWidthRatio
	if ratio <= 0 || ratio >= 100 {
		ratio = 25
	}
	leftWidth := (a.width * ratio) / 100
	if leftWidth < 20 {
		leftWidth = 20
	}
	rightWidth := a.width - leftWidth - 4
	if rightWidth < 20 {
		rightWidth = 20
		leftWidth = a.width - rightWidth - 4
	}

	a.leftPanel.Width = leftWidth
	a.leftPanel.Height = contentHeight
	a.rightPanel.Width = rightWidth
	a.rightPanel.Height = contentHeight
}

// updatePanelFocus updates border highlighting
func (a *App) updatePanelFocus() {
	a.leftPanel.Focused = a.focused == models.LeftPanel
	a.rightPanel.Focused = a.focused == models.RightPanel
}

// formatStatusBar formats a status bar with left and right aligned content
func (a *App) formatStatusBar(left, right string) string {
	availableWidth := a.width - 4
	if availableWidth < 0 {
		availableWidth = 0
	}

	// Both bars carry multibyte runes (separators, sort arrows), so all
	// width math is in display cells, never bytes.
	leftWidth := runewidth.StringWidth(left)
	rightWidth := runewidth.StringWidth(right)

	if leftWidth+rightWidth > availableWidth {
		if availableWidth > rightWidth {
			return runewidth.Truncate(left, availableWidth-rightWidth, "") + right
		}
		return runewidth.Truncate(left, availableWidth, "")
	}

	spacing := availableWidth - leftWidth - rightWidth
	return left + strings.Repeat(" ", spacing) + right
}

// ShowError displays an error overlay with the given title and message
func (a *App) ShowError(title, message string) {
	a.errorOverlay.SetError(title, message)
}
