package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stocktake/stocktake/internal/config"
	"github.com/stocktake/stocktake/internal/database"
	"github.com/stocktake/stocktake/internal/models"
	"github.com/stocktake/stocktake/internal/services/reorder"
	"github.com/stocktake/stocktake/internal/services/stock"
	ordviews "github.com/stocktake/stocktake/internal/tui/views/order"
	stockviews "github.com/stocktake/stocktake/internal/tui/views/stock"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// MaxContentWidth is the maximum width for content display
const MaxContentWidth = 120

// Module represents a view module in the application.
type Module string

const (
	ModuleDashboard Module = "dashboard"
	ModuleStock     Module = "stock"
	ModuleOrder     Module = "order"
	ModuleHelp      Module = "help"
)

// App is the main Bubble Tea application model.
type App struct {
	// Dependencies
	db     *database.DB
	config *config.Config

	// Services
	stockSvc *stock.Service
	planner  *reorder.Planner

	// Views
	stockView *stockviews.ListView
	itemForm  *stockviews.ItemForm
	orderView *ordviews.PlannerView

	// UI state
	theme       *Theme
	keys        KeyMap
	width       int
	height      int
	ready       bool
	quitting    bool
	showConfirm bool

	// Current view
	currentModule  Module
	previousModule Module
	showDetail     bool // Show detail view instead of list
	showForm       bool // Show add/edit form
	searchMode     bool // Search input mode
	searchInput    string
	noteMode       bool // Order note input mode
	noteInput      string

	// Alerts
	alerts     []Alert
	alertIndex int
	alertTicks int

	// Overview data for the header and dashboard
	summary   models.DashboardSummary
	summaries []*models.CategorySummary
}

// Alert represents a user-facing notice.
type Alert struct {
	Level   AlertLevel
	Message string
	Time    time.Time
}

// AlertLevel indicates the severity of an alert.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertWarning
	AlertCritical
)

// tickMsg is sent periodically to update the UI.
type tickMsg time.Time

// New creates a new App instance.
func New(db *database.DB, cfg *config.Config) *App {
	stockSvc := stock.NewService(db, cfg)
	planner := reorder.NewPlanner(&cfg.Reorder)

	return &App{
		db:            db,
		config:        cfg,
		stockSvc:      stockSvc,
		planner:       planner,
		stockView:     stockviews.NewListView(stockSvc),
		orderView:     ordviews.NewPlannerView(stockSvc, planner),
		theme:         NewTheme(cfg.Display.ColorScheme),
		keys:          DefaultKeyMap(),
		currentModule: ModuleDashboard,
		alerts:        []Alert{},
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(),
		a.loadSummary(),
	)
}

// tickCmd returns a command that sends tick messages.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadSummary refreshes the status totals shown in the header and
// on the dashboard.
func (a *App) loadSummary() tea.Cmd {
	return func() tea.Msg {
		summaries, dashboard, err := a.stockSvc.Overview(context.Background())
		if err != nil {
			return summaryMsg{err: err}
		}
		return summaryMsg{summaries: summaries, dashboard: dashboard}
	}
}

type summaryMsg struct {
	summaries []*models.CategorySummary
	dashboard *models.DashboardSummary
	err       error
}

type stockLoadedMsg struct {
	err error
}

type orderLoadedMsg struct {
	err error
}

type itemSavedMsg struct {
	err error
}

type itemDeletedMsg struct {
	name string
	err  error
}

type changesSavedMsg struct {
	count int
	err   error
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.updateViewDimensions()
		return a, nil

	case tickMsg:
		a.rotateAlerts()
		return a, tickCmd()

	case summaryMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Failed to load overview: "+msg.err.Error())
			return a, nil
		}
		a.summary = *msg.dashboard
		a.summaries = msg.summaries
		return a, nil

	case stockLoadedMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Failed to load stock: "+msg.err.Error())
		}
		return a, nil

	case orderLoadedMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Failed to load reorder candidates: "+msg.err.Error())
		}
		return a, nil

	case itemSavedMsg:
		a.showForm = false
		a.itemForm = nil
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Failed to save item: "+msg.err.Error())
		} else {
			a.AddAlert(AlertInfo, "Item saved")
		}
		return a, tea.Batch(a.loadStock(), a.loadSummary())

	case itemDeletedMsg:
		a.showDetail = false
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Failed to delete item: "+msg.err.Error())
		} else {
			a.AddAlert(AlertInfo, "Deleted "+msg.name)
		}
		return a, tea.Batch(a.loadStock(), a.loadSummary())

	case changesSavedMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Failed to save changes: "+msg.err.Error())
			return a, nil
		}
		a.stockView.ClearPending()
		a.AddAlert(AlertInfo, fmt.Sprintf("Saved %d change(s)", msg.count))
		return a, tea.Batch(a.loadStock(), a.loadSummary())
	}

	return a, nil
}

// handleKeyPress processes key press events.
func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle quit confirmation first (modal takes priority)
	if a.showConfirm {
		switch msg.String() {
		case "y", "Y", "enter":
			a.quitting = true
			return a, tea.Quit
		case "n", "N", "esc":
			a.showConfirm = false
			return a, nil
		}
		return a, nil
	}

	// Handle form mode BEFORE global keys - form needs all input
	if a.currentModule == ModuleStock && a.showForm {
		return a.handleFormKeys(msg)
	}

	// Handle search mode BEFORE global keys - search needs text input
	if a.currentModule == ModuleStock && a.searchMode {
		return a.handleSearchKeys(msg)
	}

	// Handle note mode BEFORE global keys
	if a.currentModule == ModuleOrder && a.noteMode {
		return a.handleNoteKeys(msg)
	}

	// Global key bindings (only when not in input mode)
	if a.keys.IsQuit(msg) {
		a.showConfirm = true
		return a, nil
	}

	// Function key navigation (always available)
	if module, ok := a.keys.ModuleFor(msg); ok {
		switch module {
		case ModuleHelp:
			a.previousModule = a.currentModule
			a.currentModule = ModuleHelp
		case ModuleDashboard:
			a.currentModule = ModuleDashboard
			a.showDetail = false
			return a, a.loadSummary()
		case ModuleStock:
			a.currentModule = ModuleStock
			a.showDetail = false
			return a, a.loadStock()
		case ModuleOrder:
			a.currentModule = ModuleOrder
			a.showDetail = false
			return a, a.loadOrder()
		}
		return a, nil
	}

	// Back navigation (only when not in input mode)
	if a.keys.Back.Matches(msg) {
		if a.showDetail {
			a.showDetail = false
			if a.currentModule == ModuleOrder {
				a.orderView.ClearPreview()
			}
			return a, nil
		}
		if a.currentModule == ModuleStock && a.stockView.HasPending() {
			a.stockView.ClearPending()
			return a, nil
		}
		if a.currentModule == ModuleHelp && a.previousModule != "" {
			a.currentModule = a.previousModule
			a.previousModule = ""
		}
		return a, nil
	}

	// Module-specific key handling
	if a.currentModule == ModuleStock {
		return a.handleStockKeys(msg)
	}

	if a.currentModule == ModuleOrder {
		return a.handleOrderKeys(msg)
	}

	return a, nil
}

// handleStockKeys handles key presses in the stock module.
// Note: form and search modes are handled in handleKeyPress before this is called
func (a *App) handleStockKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showDetail {
		// In detail view
		switch msg.String() {
		case "esc":
			a.showDetail = false
		case "e":
			item := a.stockView.SelectedItem()
			if item != nil {
				a.itemForm = stockviews.NewItemForm(stockviews.FormModeEdit, a.formCategories(item))
				a.itemForm.SetItem(item, a.formCategories(item))
				a.showForm = true
				a.showDetail = false
			}
		case "x":
			item := a.stockView.SelectedItem()
			if item != nil {
				return a, a.deleteItem(item)
			}
		}
		return a, nil
	}

	// In list view
	switch msg.String() {
	case "up", "k":
		a.stockView.MoveUp()
	case "down", "j":
		a.stockView.MoveDown()
	case "enter":
		if a.stockView.SelectedItem() != nil {
			a.showDetail = true
		}
	case "pgup":
		a.stockView.PageUp()
	case "pgdown":
		a.stockView.PageDown()
	case "+", "=", "right":
		a.stockView.AdjustSelected(1)
	case "-", "left":
		a.stockView.AdjustSelected(-1)
	case "ctrl+s":
		if a.stockView.HasPending() {
			return a, a.saveChanges()
		}
	case "a":
		a.itemForm = stockviews.NewItemForm(stockviews.FormModeAdd, a.config.CategoryNames())
		a.showForm = true
	case "e":
		item := a.stockView.SelectedItem()
		if item != nil {
			a.itemForm = stockviews.NewItemForm(stockviews.FormModeEdit, a.formCategories(item))
			a.itemForm.SetItem(item, a.formCategories(item))
			a.showForm = true
		}
	case "x":
		item := a.stockView.SelectedItem()
		if item != nil {
			return a, a.deleteItem(item)
		}
	case "/", "s":
		a.searchMode = true
		a.searchInput = ""
	}

	return a, nil
}

// formCategories returns the configured categories, extended with the
// item's own category when it is not configured. Items in unknown
// categories keep them through an edit.
func (a *App) formCategories(item *models.Item) []string {
	categories := a.config.CategoryNames()
	for _, cat := range categories {
		if cat == item.Category {
			return categories
		}
	}
	return append(categories, item.Category)
}

// handleFormKeys handles key presses in form mode.
func (a *App) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	a.itemForm.HandleKey(key)

	if a.itemForm.IsCancelled() {
		a.showForm = false
		a.itemForm = nil
		return a, nil
	}

	if a.itemForm.IsSubmitted() {
		return a, a.saveItem()
	}

	return a, nil
}

// handleSearchKeys handles key presses in search mode.
func (a *App) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "esc":
		a.searchMode = false
		a.searchInput = ""
		a.stockView.SetSearch("")
	case "enter":
		a.searchMode = false
		a.stockView.SetSearch(a.searchInput)
	case "backspace":
		if len(a.searchInput) > 0 {
			a.searchInput = a.searchInput[:len(a.searchInput)-1]
		}
	default:
		if len(key) == 1 {
			a.searchInput += key
		}
	}

	return a, nil
}

// handleNoteKeys handles key presses in order note mode.
func (a *App) handleNoteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "esc":
		a.noteMode = false
		a.noteInput = ""
	case "enter":
		a.noteMode = false
		a.orderView.SetNoteForSelected(a.noteInput)
		a.noteInput = ""
	case "backspace":
		if len(a.noteInput) > 0 {
			a.noteInput = a.noteInput[:len(a.noteInput)-1]
		}
	default:
		if len(key) == 1 || key == " " {
			a.noteInput += key
		}
	}

	return a, nil
}

// handleOrderKeys handles key presses in the order module.
// Note: note mode is handled in handleKeyPress before this is called
func (a *App) handleOrderKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showDetail {
		// In order preview
		switch msg.String() {
		case "esc":
			a.showDetail = false
			a.orderView.ClearPreview()
		}
		return a, nil
	}

	// In candidate list
	switch msg.String() {
	case "up", "k":
		a.orderView.MoveUp()
	case "down", "j":
		a.orderView.MoveDown()
	case "+", "=", "right":
		a.orderView.AdjustSelected(1)
	case "-", "left":
		a.orderView.AdjustSelected(-1)
	case "0":
		a.orderView.ZeroSelected()
	case "r":
		a.orderView.ResetSuggested()
	case "n":
		if a.orderView.SelectedCandidate() != nil {
			a.noteMode = true
			a.noteInput = a.orderView.NoteForSelected()
		}
	case "enter":
		if err := a.orderView.Compose(); err != nil {
			if errors.Is(err, reorder.ErrEmptySelection) {
				a.AddAlert(AlertWarning, "Nothing to order: all quantities are zero")
			} else {
				a.AddAlert(AlertWarning, "Failed to compose order: "+err.Error())
			}
			return a, nil
		}
		a.showDetail = true
	}

	return a, nil
}

// saveItem saves the item from the form.
func (a *App) saveItem() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		var err error
		if a.itemForm.Mode() == stockviews.FormModeAdd {
			_, err = a.stockSvc.CreateItem(ctx, a.itemForm.CreateInput())
		} else {
			_, err = a.stockSvc.UpdateItem(ctx, a.itemForm.UpdateInput())
		}

		return itemSavedMsg{err: err}
	}
}

// deleteItem removes the item from the checklist.
func (a *App) deleteItem(item *models.Item) tea.Cmd {
	return func() tea.Msg {
		err := a.stockSvc.DeleteItem(context.Background(), item.ID)
		return itemDeletedMsg{name: item.Name, err: err}
	}
}

// saveChanges commits the pending quantity edits as a single batch.
func (a *App) saveChanges() tea.Cmd {
	changes := a.stockView.PendingChanges()
	return func() tea.Msg {
		err := a.stockSvc.ApplyChanges(context.Background(), changes)
		return changesSavedMsg{count: len(changes), err: err}
	}
}

// loadStock loads the checklist data.
func (a *App) loadStock() tea.Cmd {
	return func() tea.Msg {
		err := a.stockView.Load(context.Background())
		return stockLoadedMsg{err: err}
	}
}

// loadOrder loads the reorder candidates.
func (a *App) loadOrder() tea.Cmd {
	return func() tea.Msg {
		err := a.orderView.Load(context.Background())
		return orderLoadedMsg{err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	if a.quitting {
		return a.theme.Title.Render("Stocktake shutting down...")
	}

	var b strings.Builder

	// Header
	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	// Alert bar
	b.WriteString(a.renderAlertBar())
	b.WriteString("\n")

	// Main content area
	contentHeight := a.height - 6 // header, alert, footer
	if a.showConfirm {
		b.WriteString(a.renderConfirmDialog(contentHeight))
	} else {
		b.WriteString(a.renderContent(contentHeight))
	}

	// Footer/status bar
	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	return b.String()
}

// renderHeader renders the top header bar.
func (a *App) renderHeader() string {
	// Compact title on narrow terminals
	title := fmt.Sprintf("STOCKTAKE v%s", Version)
	if Screen(a.width) != ScreenNarrow {
		title = fmt.Sprintf("STOCKTAKE INVENTORY CONSOLE v%s", Version)
	}

	// Right side: shop info and totals
	shopInfo := fmt.Sprintf("%s | ITEMS: %d | NEEDS: %d",
		a.config.Shop.Name,
		a.summary.Total,
		a.summary.Needs,
	)

	// Calculate spacing
	spacing := a.width - lipgloss.Width(title) - lipgloss.Width(shopInfo) - 2
	if spacing < 1 {
		spacing = 1
	}

	header := a.theme.Header.Render(title) +
		strings.Repeat(" ", spacing) +
		a.theme.Header.Render(shopInfo)

	// Separator line
	separator := a.theme.DrawDoubleLine(a.width)

	return header + "\n" + separator
}

// rotateAlerts advances the displayed alert every few ticks.
func (a *App) rotateAlerts() {
	if len(a.alerts) < 2 {
		a.alertIndex = 0
		return
	}
	a.alertTicks++
	if a.alertTicks >= 3 {
		a.alertTicks = 0
		a.alertIndex = (a.alertIndex + 1) % len(a.alerts)
	}
}

// renderAlertBar renders the rotating alert display.
func (a *App) renderAlertBar() string {
	dateStr := time.Now().Format(a.config.Display.DateFormat)

	var alertText string
	if len(a.alerts) > 0 {
		alert := a.alerts[a.alertIndex%len(a.alerts)]
		switch alert.Level {
		case AlertCritical:
			alertText = a.theme.AlertCrit.Render("CRITICAL: " + alert.Message)
		case AlertWarning:
			alertText = a.theme.AlertWarn.Render("WARNING: " + alert.Message)
		default:
			alertText = a.theme.Alert.Render("INFO: " + alert.Message)
		}
	} else {
		alertText = a.theme.Muted.Render("All stock accounted for")
	}

	dateDisplay := a.theme.Value.Render(dateStr)
	divider := a.theme.StatusDivider.Render()

	return dateDisplay + divider + alertText
}

// renderContent renders the main content area based on current module.
func (a *App) renderContent(height int) string {
	content := a.getModuleContent()

	// Constrain content width to MaxContentWidth
	contentWidth := a.width
	if contentWidth > MaxContentWidth {
		contentWidth = MaxContentWidth
	}

	// Center the content container within the terminal
	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Top)

	contentStyle := lipgloss.NewStyle().
		Width(contentWidth)

	return style.Render(contentStyle.Render(content))
}

// getModuleContent returns the content for the current module.
func (a *App) getModuleContent() string {
	switch a.currentModule {
	case ModuleDashboard:
		return a.renderDashboard()
	case ModuleStock:
		return a.renderStock()
	case ModuleOrder:
		return a.renderOrder()
	case ModuleHelp:
		return a.renderHelp()
	default:
		return ""
	}
}

// renderStock renders the stock module.
func (a *App) renderStock() string {
	// Show form if active
	if a.showForm && a.itemForm != nil {
		return a.itemForm.RenderResponsive(a.width)
	}

	// Show detail if active
	if a.showDetail {
		item := a.stockView.SelectedItem()
		return a.stockView.RenderDetail(item)
	}

	// Show search bar if in search mode
	var searchBar string
	if a.searchMode {
		searchBar = a.theme.Label.Render("SEARCH: ") +
			a.theme.Accent.Render(a.searchInput) +
			a.theme.Accent.Render("_") + "\n\n"
	}

	return searchBar + a.stockView.Render(a.contentWidth(), a.height-6)
}

// renderOrder renders the order module.
func (a *App) renderOrder() string {
	// Show preview if composed
	if a.showDetail {
		return a.orderView.RenderPreview(a.contentWidth())
	}

	// Show note bar if in note mode
	var noteBar string
	if a.noteMode {
		noteBar = a.theme.Label.Render("NOTE: ") +
			a.theme.Accent.Render(a.noteInput) +
			a.theme.Accent.Render("_") + "\n\n"
	}

	return noteBar + a.orderView.Render(a.contentWidth(), a.height-6)
}

func (a *App) contentWidth() int {
	return ContentWidth(a.width, 40, MaxContentWidth)
}

// renderDashboard renders the category overview.
func (a *App) renderDashboard() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("═══ STOCK STATUS OVERVIEW ═══"))
	b.WriteString("\n\n")

	// Totals panel
	var totals strings.Builder
	totals.WriteString(fmt.Sprintf("Items:  %d\n", a.summary.Total))
	totals.WriteString("Needs:  " + a.theme.Error.Render(fmt.Sprintf("%d", a.summary.Needs)) + "\n")
	totals.WriteString("Low:    " + a.theme.Warning.Render(fmt.Sprintf("%d", a.summary.Low)) + "\n")
	totals.WriteString("Good:   " + a.theme.Success.Render(fmt.Sprintf("%d", a.summary.Good)))

	// Stock health bar across all items
	var health strings.Builder
	if a.summary.Total > 0 {
		health.WriteString("Stocked ")
		health.WriteString(a.theme.ProgressBar(float64(a.summary.Good), float64(a.summary.Total), 24))
		health.WriteString(fmt.Sprintf(" %d/%d", a.summary.Good, a.summary.Total))
	} else {
		health.WriteString(a.theme.Muted.Render("Checklist is empty"))
	}

	panelWidth := a.contentWidth() / 2
	if panelWidth < 30 {
		panelWidth = 30
	}
	left := a.theme.Panel("TOTALS", totals.String(), panelWidth)
	right := a.theme.Panel("HEALTH", health.String(), panelWidth)
	b.WriteString(SideBySide(left, right, a.contentWidth(), 2))
	b.WriteString("\n\n")

	// Per-category breakdown
	b.WriteString(a.theme.Subtitle.Render("CATEGORIES"))

	if len(a.summaries) == 0 {
		b.WriteString("\n")
		b.WriteString(a.theme.Muted.Render("  No overview loaded yet."))
		return b.String()
	}

	// Clamp categories to the rows left under the panels so the
	// dashboard never exceeds the content area; overflow collapses
	// into a count. The stock checklist has the full scrolling list.
	rows := a.height - 6 - lipgloss.Height(b.String())
	rows = max(rows, 1)

	visible := a.summaries
	hidden := 0
	if len(visible) > rows {
		hidden = len(visible) - rows + 1
		visible = visible[:rows-1]
	}

	for _, summary := range visible {
		name := PadRight(Truncate(summary.Category, 22), 22)
		counts := fmt.Sprintf("needs %s  low %s  good %s",
			a.theme.Error.Render(PadLeft(fmt.Sprintf("%d", len(summary.Needs)), 2)),
			a.theme.Warning.Render(PadLeft(fmt.Sprintf("%d", len(summary.Low)), 2)),
			a.theme.Success.Render(PadLeft(fmt.Sprintf("%d", len(summary.Good)), 2)),
		)
		b.WriteString("\n  " + a.theme.Primary.Render(name) + " " + counts)
	}
	if hidden > 0 {
		b.WriteString("\n" + a.theme.Muted.Render(fmt.Sprintf("  +%d more, F3 for the full checklist", hidden)))
	}

	return b.String()
}

// renderHelp renders the help screen.
func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("═══ HELP ═══"))
	b.WriteString("\n\n")

	b.WriteString(a.theme.Subtitle.Render("NAVIGATION"))
	b.WriteString("\n\n")

	navItems := [][2]string{
		{"F1", "Help"},
		{"F2", "Dashboard"},
		{"F3", "Stock Checklist"},
		{"F4", "Reorder Planner"},
		{"F10", "Quit"},
	}

	for _, item := range navItems {
		line := fmt.Sprintf("    %-8s  %s", item[0], item[1])
		b.WriteString(a.theme.Primary.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Subtitle.Render("CONTROLS"))
	b.WriteString("\n\n")

	ctrlItems := [][2]string{
		{"Up/Down", "Navigate"},
		{"+/-", "Adjust quantity"},
		{"Ctrl+S", "Save quantity edits"},
		{"Enter", "Select / Compose order"},
		{"Esc", "Back/Cancel"},
		{"/", "Search"},
		{"Tab", "Next field"},
	}

	for _, item := range ctrlItems {
		line := fmt.Sprintf("    %-8s  %s", item[0], item[1])
		b.WriteString(a.theme.Primary.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Muted.Render("Press Esc to return"))

	return b.String()
}

// renderConfirmDialog renders the quit confirmation dialog.
func (a *App) renderConfirmDialog(height int) string {
	dialog := a.theme.Box.Render(
		a.theme.Title.Render("CONFIRM EXIT") + "\n\n" +
			a.theme.Base.Render("Are you sure you want to exit?") + "\n\n" +
			a.theme.Label.Render("[Y]es  [N]o"),
	)

	// Center the dialog
	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(dialog)
}

// renderFooter renders the bottom status bar.
func (a *App) renderFooter() string {
	// Draw separator
	separator := a.theme.DrawHorizontalLine(a.width)

	// Help text
	help := a.keys.StatusBarHelp()

	return separator + "\n" + a.theme.Footer.Render(help)
}

// updateViewDimensions resizes the view tables to fit the terminal.
func (a *App) updateViewDimensions() {
	rows := ContentHeight(a.height, 12)
	if rows < 4 {
		rows = 4
	}
	a.stockView.SetVisibleRows(rows)
	a.orderView.SetVisibleRows(rows)
}

// AddAlert adds a new alert to the display.
func (a *App) AddAlert(level AlertLevel, message string) {
	a.alerts = append([]Alert{{
		Level:   level,
		Message: message,
		Time:    time.Now(),
	}}, a.alerts...)
	a.alertIndex = 0
	a.alertTicks = 0

	// Keep only last 10 alerts
	if len(a.alerts) > 10 {
		a.alerts = a.alerts[:10]
	}
}

// ClearAlerts removes all alerts.
func (a *App) ClearAlerts() {
	a.alerts = []Alert{}
	a.alertIndex = 0
}

// Run starts the TUI application.
func Run(ctx context.Context, db *database.DB, cfg *config.Config) error {
	app := New(db, cfg)

	p := tea.NewProgram(app, tea.WithAltScreen())

	// Handle context cancellation
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	_, err := p.Run()
	return err
}
