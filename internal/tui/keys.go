package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Rerun key.Binding
	More  key.Binding
	Fewer key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Rerun: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rerun with next seed"),
		),
		More: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more simulations"),
		),
		Fewer: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "fewer simulations"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Rerun, k.More, k.Fewer, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Rerun, k.More, k.Fewer},
		{k.Help, k.Quit},
	}
}

// simulationSteps are the counts the +/- keys move between
var simulationSteps = []int{100, 250, 500, 1000, 2500, 5000, 10000, 25000, 50000, 100000}

// stepSimulations returns the next step above (up) or below the current
// count, staying put at either end of the range.
func stepSimulations(current int, up bool) int {
	if up {
		for _, s := range simulationSteps {
			if s > current {
				return s
			}
		}
		return max(current, simulationSteps[len(simulationSteps)-1])
	}
	for i := len(simulationSteps) - 1; i >= 0; i-- {
		if simulationSteps[i] < current {
			return simulationSteps[i]
		}
	}
	return min(current, simulationSteps[0])
}
