package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/corpus/internal/breakeven"
	"github.com/rgehrsitz/corpus/internal/calculation"
	"github.com/rgehrsitz/corpus/internal/compare"
	"github.com/rgehrsitz/corpus/internal/config"
	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/rgehrsitz/corpus/internal/tui/components"
	"github.com/rgehrsitz/corpus/internal/tui/scenes"
	"github.com/rgehrsitz/corpus/internal/tui/tuimsg"
)

const spinnerInterval = 100 * time.Millisecond

// Options configures a Model
type Options struct {
	// Parser loads the plan file. Nil uses the built-in defaults.
	Parser *config.InputParser
	// Watch reloads the plan whenever the file changes on disk
	Watch bool
	// Logger receives engine warnings. Nil discards them.
	Logger calculation.Logger
}

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	planPath string
	parser   *config.InputParser

	// plan is the plan as loaded from disk; working carries the edited parameters
	plan    *domain.Plan
	working *domain.Plan
	result  *domain.Result

	calcEngine    *calculation.CalculationEngine
	compareEngine *compare.CompareEngine
	solver        *breakeven.Solver

	// Plan watcher
	watch     bool
	reloads   chan tea.Msg
	watchCtx  context.Context
	stopWatch context.CancelFunc

	homeModel       *scenes.HomeModel
	parametersModel *scenes.ParametersModel
	resultsModel    *scenes.ResultsModel
	scenariosModel  *scenes.ScenariosModel
	optimizeModel   *scenes.OptimizeModel
	compareModel    *scenes.CompareModel

	status string
	err    error

	loading        bool
	loadingMessage string
	spinner        *components.Spinner
}

// NewModel creates a new application model for the plan at planPath
func NewModel(planPath string, opts Options) Model {
	parser := opts.Parser
	if parser == nil {
		parser = config.NewInputParser()
	}

	engine := calculation.NewCalculationEngine()
	engine.SetLogger(opts.Logger)
	compareEngine := compare.NewCompareEngine(engine)

	m := Model{
		currentScene:    SceneHome,
		previousScene:   SceneHome,
		width:           80,
		height:          24,
		planPath:        planPath,
		parser:          parser,
		calcEngine:      engine,
		compareEngine:   compareEngine,
		solver:          breakeven.NewDefaultSolver(engine),
		watch:           opts.Watch,
		homeModel:       scenes.NewHomeModel(),
		parametersModel: scenes.NewParametersModel(),
		resultsModel:    scenes.NewResultsModel(),
		scenariosModel:  scenes.NewScenariosModel(),
		optimizeModel:   scenes.NewOptimizeModel(),
		compareModel:    scenes.NewCompareModel(compareEngine.TemplateRegistry),
		loading:         true,
		loadingMessage:  "Loading plan...",
		spinner:         components.NewSpinner(),
	}

	if opts.Watch {
		m.reloads = make(chan tea.Msg, 1)
		m.watchCtx, m.stopWatch = context.WithCancel(context.Background())
	}
	return m
}

// Init loads the plan and, when enabled, starts watching it
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadPlanCmd(m.parser, m.planPath), tickCmd()}
	if m.watch {
		cmds = append(cmds,
			watchPlanCmd(m.watchCtx, m.parser, m.planPath, m.reloads),
			waitForReloadCmd(m.reloads))
	}
	return tea.Batch(cmds...)
}

// Close stops the plan watcher
func (m Model) Close() {
	if m.stopWatch != nil {
		m.stopWatch()
	}
}

// Plan returns the working plan, including unsaved parameter edits
func (m Model) Plan() *domain.Plan {
	return m.working
}

// Result returns the latest calculation result
func (m Model) Result() *domain.Result {
	return m.result
}

// reloadMsg wraps a message coming from the plan watcher
type reloadMsg struct {
	msg tea.Msg
}

func loadPlanCmd(parser *config.InputParser, path string) tea.Cmd {
	return func() tea.Msg {
		plan, err := parser.LoadFromFile(path)
		if err != nil {
			return tuimsg.ErrorMsg{Err: err}
		}
		return tuimsg.PlanLoadedMsg{Plan: plan}
	}
}

// watchPlanCmd blocks for the lifetime of the watcher, forwarding reloads
// onto ch.
func watchPlanCmd(ctx context.Context, parser *config.InputParser, path string, ch chan<- tea.Msg) tea.Cmd {
	return func() tea.Msg {
		err := parser.Watch(ctx, path, func(plan *domain.Plan, err error) {
			var msg tea.Msg = tuimsg.PlanLoadedMsg{Plan: plan, Reloaded: true}
			if err != nil {
				msg = tuimsg.ErrorMsg{Err: err}
			}
			select {
			case ch <- msg:
			case <-ctx.Done():
			}
		})
		return watchStoppedMsg{err: err}
	}
}

func waitForReloadCmd(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return reloadMsg{msg: <-ch}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg { return TickMsg{} })
}

func calculateCmd(engine *calculation.CalculationEngine, plan *domain.Plan) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.Run(context.Background(), plan)
		return tuimsg.CalculationCompleteMsg{Plan: plan, Result: result, Err: err}
	}
}

func compareCmd(engine *compare.CompareEngine, plan *domain.Plan, path string, templates []string) tea.Cmd {
	return func() tea.Msg {
		set, err := engine.Compare(context.Background(), plan, compare.CompareOptions{
			Templates:  templates,
			ConfigPath: path,
		})
		return tuimsg.ComparisonCompleteMsg{Set: set, Err: err}
	}
}

// breakEvenCmd solves every lever for closing the gap, or for reaching
// target when one is given.
func breakEvenCmd(solver *breakeven.Solver, plan *domain.Plan, target *decimal.Decimal) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		constraints := breakeven.DefaultConstraints()
		if target == nil {
			result, err := solver.OptimizeAllTargets(ctx, plan, constraints)
			return tuimsg.BreakEvenCompleteMsg{Result: result, Err: err}
		}
		constraints.TargetCorpus = target
		result, err := solver.OptimizeMultiDimensional(ctx, plan, constraints, breakeven.GoalTargetCorpus)
		return tuimsg.BreakEvenCompleteMsg{Result: result, Err: err}
	}
}

func savePlanCmd(path string, plan *domain.Plan) tea.Cmd {
	return func() tea.Msg {
		return tuimsg.SaveCompleteMsg{Filename: path, Err: config.SavePlan(path, plan)}
	}
}
