package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"catidle/internal/pet"
)

// RenderStatus renders a saved game for the status command
func RenderStatus(rec pet.SaveRecord, cfg pet.Config) string {
	st := rec.State
	th := cfg.Thresholds
	visual := pet.DeriveVisual(pet.State{Hunger: st.Hunger, Thirst: st.Thirst}, th)

	var inv []string
	for _, item := range st.Inventory {
		name := item.Name
		if name == "" {
			name = item.ID
		}
		inv = append(inv, name)
	}
	invDisplay := strings.Join(inv, ", ")
	if invDisplay == "" {
		invDisplay = "Empty"
	}
	furniture := strings.Join(st.PlacedItems, ", ")
	if furniture == "" {
		furniture = "None"
	}
	upgrades := strings.Join(rec.Upgrades, ", ")
	if upgrades == "" {
		upgrades = "None"
	}

	state := "Alive"
	if st.GameOver {
		state = "Game over"
	}
	saved := "never"
	if rec.Timestamp > 0 {
		saved = time.UnixMilli(rec.Timestamp).Local().Format("2006-01-02 15:04:05")
	}

	lines := []string{
		gameStyles.title.Render(pet.VisualEmoji(visual) + " catidle " + pet.VisualEmoji(visual)),
		"",
		renderBar("Hunger", st.Hunger, th),
		renderBar("Thirst", st.Thirst, th),
		renderBar("Fun", st.Fun, th),
		"",
		gameStyles.coins.Render(fmt.Sprintf("🪙 %d coins", st.Coins)),
		fmt.Sprintf("%-10s %s", "Items:", invDisplay),
		fmt.Sprintf("%-10s %s", "Furniture:", furniture),
		fmt.Sprintf("%-10s %s", "Upgrades:", upgrades),
		fmt.Sprintf("%-10s %s", "Status:", state),
		fmt.Sprintf("%-10s %s", "Saved:", saved),
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("#FF75B5")).
		Padding(0, 2)
	return box.Render(strings.Join(lines, "\n"))
}
