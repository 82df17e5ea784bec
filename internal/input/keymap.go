// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tidecore/internal/config"
	"github.com/bethropolis/tidecore/internal/logger"
)

// Keymap maps keys to actions.
type Keymap map[tcell.Key]Action
type ModKeymap map[tcell.ModMask]Keymap // For keys combined with modifiers

// Processor translates tcell events into ActionEvents.
type Processor struct {
	keymap    Keymap
	modKeymap ModKeymap

	topRow      int     // First visual row shown on screen
	cellAdvance float64 // Advance of one terminal cell
	dragging    bool
}

// NewProcessor creates a processor with the default bindings.
func NewProcessor() *Processor {
	p := &Processor{
		keymap:      make(Keymap),
		modKeymap:   make(ModKeymap),
		cellAdvance: config.DefaultNarrowAdvance,
	}
	p.loadDefaultBindings()
	return p
}

func (p *Processor) loadDefaultBindings() {
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyPgUp] = ActionMovePageUp
	p.keymap[tcell.KeyPgDn] = ActionMovePageDown
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd
	p.keymap[tcell.KeyEnter] = ActionInsertNewLine
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.keymap[tcell.KeyDelete] = ActionDeleteCharForward
	p.keymap[tcell.KeyF3] = ActionFindNext

	// Control codes carry Ctrl in the key itself.
	p.keymap[tcell.KeyCtrlZ] = ActionUndo
	p.keymap[tcell.KeyCtrlY] = ActionRedo
	p.keymap[tcell.KeyCtrlA] = ActionSelectAll
	p.keymap[tcell.KeyCtrlC] = ActionCopy
	p.keymap[tcell.KeyCtrlX] = ActionCut
	p.keymap[tcell.KeyCtrlV] = ActionPaste

	ctrlMap := make(Keymap)
	ctrlMap[tcell.KeyHome] = ActionMoveFileStart
	ctrlMap[tcell.KeyEnd] = ActionMoveFileEnd
	p.modKeymap[tcell.ModCtrl] = ctrlMap
}

// Bind overrides the action for a key. mod selects a modifier table;
// tcell.ModNone binds the plain key.
func (p *Processor) Bind(mod tcell.ModMask, key tcell.Key, action Action) {
	if mod == tcell.ModNone {
		p.keymap[key] = action
		return
	}
	if p.modKeymap[mod] == nil {
		p.modKeymap[mod] = make(Keymap)
	}
	p.modKeymap[mod][key] = action
}

// SetView tells the processor which visual row is at the top of the screen
// and the advance of one cell, so pointer events can be mapped.
func (p *Processor) SetView(topRow int, cellAdvance float64) {
	if topRow < 0 {
		topRow = 0
	}
	p.topRow = topRow
	if cellAdvance > 0 {
		p.cellAdvance = cellAdvance
	}
}

// ProcessEvent takes a tcell key event and returns the corresponding ActionEvent.
func (p *Processor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()
	shift := mod&tcell.ModShift != 0

	// 1. Modifier + key, ignoring Shift which only extends.
	if modKeyMap, ok := p.modKeymap[mod&^tcell.ModShift]; ok {
		if action, ok := modKeyMap[key]; ok {
			return p.decoded(ActionEvent{Action: action, Extend: shift && isMotion(action)})
		}
	}

	// Control codes already imply Ctrl.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	// 2. Plain keys, with Shift allowed for selection.
	if mod&^tcell.ModShift == tcell.ModNone {
		if action, ok := p.keymap[key]; ok {
			switch {
			case action == ActionUndo && shift:
				action = ActionRedo
			case action == ActionFindNext && shift:
				action = ActionFindPrevious
			}
			return p.decoded(ActionEvent{Action: action, Extend: shift && isMotion(action)})
		}
	}

	// 3. Text.
	if mod&^tcell.ModShift == tcell.ModNone {
		switch key {
		case tcell.KeyRune:
			return p.decoded(ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()})
		case tcell.KeyTab:
			return p.decoded(ActionEvent{Action: ActionInsertRune, Rune: '\t'})
		}
	}

	logger.DebugTagf("input", "Input: no binding for %s", ev.Name())
	return ActionEvent{Action: ActionUnknown}
}

// ProcessMouse maps primary-button presses to clicks and held motion to
// drags. Other buttons and releases return ActionUnknown.
func (p *Processor) ProcessMouse(ev *tcell.EventMouse) ActionEvent {
	if ev.Buttons()&tcell.Button1 == 0 {
		p.dragging = false
		return ActionEvent{Action: ActionUnknown}
	}
	x, y := ev.Position()
	action := ActionClick
	if p.dragging {
		action = ActionDrag
	}
	p.dragging = true
	return p.decoded(ActionEvent{
		Action: action,
		Row:    p.topRow + y,
		X:      float64(x) * p.cellAdvance,
	})
}

func (p *Processor) decoded(ev ActionEvent) ActionEvent {
	logger.DebugTagf("input", "Input: %v (extend=%v)", ev.Action, ev.Extend)
	return ev
}

func isMotion(a Action) bool {
	_, ok := motions[a]
	return ok
}
