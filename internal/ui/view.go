package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"catidle/internal/pet"
)

var gameStyles = struct {
	title   lipgloss.Style
	status  lipgloss.Style
	menu    lipgloss.Style
	menuBox lipgloss.Style
	stats   lipgloss.Style
	coins   lipgloss.Style
	bubble  lipgloss.Style
	muted   lipgloss.Style
}{
	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF75B5")).
		Padding(0, 1),

	status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")).
		Width(40),

	stats: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")).
		Width(40),

	menu: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")),

	menuBox: lipgloss.NewStyle().
		Padding(0, 2),

	coins: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFD700")),

	bubble: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#888888")).
		Padding(0, 1),

	muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666")),
}

// barColors maps a stat bar band to its colour
var barColors = map[pet.Level]lipgloss.Color{
	pet.LevelOK:      lipgloss.Color("#4CAF50"),
	pet.LevelWarning: lipgloss.Color("#FFC107"),
	pet.LevelDanger:  lipgloss.Color("#F44336"),
}

// View implements tea.Model
func (m Model) View() string {
	if m.Quitting {
		return fmt.Sprintf("Thanks for playing! You finished with %d coins.\n", m.snap.Coins)
	}
	if m.snap.GameOver {
		return m.gameOverView()
	}
	if m.InShop {
		return m.shopView()
	}

	title := gameStyles.title.Render("🐾 catidle 🐾")
	sections := []string{
		title,
		"",
		m.renderPet(),
		"",
		m.renderStats(),
		"",
		m.renderInventory(),
	}

	if line := m.activeMessage(); line != "" {
		sections = append(sections, "", gameStyles.status.Render(line))
	}

	sections = append(sections,
		"",
		m.renderMenu(),
		"",
		gameStyles.muted.Render("[f]eed [w]ater [p]et [b]ackground [s]hop [1-9] use [r]estart [q]uit"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderPet() string {
	var body string
	if m.Animation.Type != AnimNone {
		body = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true).
			Render(GetAnimationFrame(m.Animation))
	} else {
		body = lipgloss.NewStyle().Padding(1, 4).Render(pet.VisualEmoji(m.snap.Visual))
	}

	if m.Monologue != "" && pet.TimeNow().Before(m.MonologueExpires) {
		return lipgloss.JoinHorizontal(lipgloss.Center, body, gameStyles.bubble.Render(m.Monologue))
	}
	return body
}

func (m Model) renderStats() string {
	th := m.engine.Config().Thresholds
	lines := []string{
		renderBar("Hunger", m.snap.Hunger, th),
		renderBar("Thirst", m.snap.Thirst, th),
		renderBar("Fun", m.snap.Fun, th),
		"",
		gameStyles.coins.Render(fmt.Sprintf("🪙 %d coins", m.snap.Coins)),
	}
	if len(m.snap.PlacedItems) > 0 {
		lines = append(lines, "Furniture: "+strings.Join(m.furnitureNames(), ", "))
	}
	return gameStyles.stats.Render(strings.Join(lines, "\n"))
}

// renderBar draws a ten-cell bar coloured by its band
func renderBar(name string, value int, th pet.Thresholds) string {
	filled := value / 10
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
	style := lipgloss.NewStyle().Foreground(barColors[pet.BarLevel(value, th)])
	return fmt.Sprintf("%-7s [%s] %3d%%", name+":", style.Render(bar), value)
}

func (m Model) furnitureNames() []string {
	cfg := m.engine.Config()
	names := make([]string, 0, len(m.snap.PlacedItems))
	for _, id := range m.snap.PlacedItems {
		if item, ok := cfg.Item(id); ok {
			names = append(names, item.Name)
		} else {
			names = append(names, id)
		}
	}
	return names
}

func (m Model) renderInventory() string {
	slots := make([]string, 0, m.snap.Capacity)
	for i := 0; i < m.snap.Capacity; i++ {
		label := "-"
		if i < len(m.snap.Inventory) {
			label = m.snap.Inventory[i].Name
		}
		slots = append(slots, fmt.Sprintf("[%d] %s", i+1, label))
	}
	return "Inventory: " + strings.Join(slots, "  ")
}

// cooldownLabel shows the remaining seconds or the current amount
func (m Model) cooldownLabel(a pet.Action, verb string) string {
	if cd := m.snap.Cooldowns[a]; cd.Active {
		return fmt.Sprintf("%s (%ds)", verb, cd.Remaining)
	}
	return fmt.Sprintf("%s +%d", verb, m.snap.Amounts[a])
}

func (m Model) renderMenu() string {
	labels := []string{
		m.cooldownLabel(pet.ActionFeed, "Feed"),
		m.cooldownLabel(pet.ActionWater, "Water"),
	}
	labels = append(labels, menuChoices[2:]...)

	var menuItems []string
	for i, choice := range labels {
		cursor := " "
		if m.Choice == i {
			cursor = ">"
		}
		menuItems = append(menuItems, fmt.Sprintf("%s %s", cursor, choice))
	}
	return gameStyles.menuBox.Render(strings.Join(menuItems, "\n"))
}

func (m Model) activeMessage() string {
	if m.Message != "" && pet.TimeNow().Before(m.MessageExpires) {
		return m.Message
	}
	return ""
}

func (m Model) shopView() string {
	var items []string
	for i, offer := range m.engine.Listing() {
		cursor := " "
		if m.ShopChoice == i {
			cursor = ">"
		}
		state := ""
		switch {
		case offer.Owned:
			state = " (owned)"
		case offer.Placed:
			state = " (placed)"
		case !offer.Affordable:
			state = " (need more coins)"
		}
		line := fmt.Sprintf("%s %-16s %4d🪙  %s%s", cursor, offer.Item.Name, offer.Item.Cost, offer.Item.Desc, state)
		if !offer.Enabled() {
			line = gameStyles.muted.Render(line)
		}
		items = append(items, line)
	}

	sections := []string{
		gameStyles.title.Render("🛒 Shop"),
		gameStyles.coins.Render(fmt.Sprintf("🪙 %d coins", m.snap.Coins)),
		"",
		gameStyles.menuBox.Render(strings.Join(items, "\n")),
		"",
		m.renderInventory(),
	}
	if line := m.activeMessage(); line != "" {
		sections = append(sections, "", gameStyles.status.Render(line))
	}
	sections = append(sections, "", gameStyles.muted.Render("arrows to move • enter to buy • s/esc to close"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) gameOverView() string {
	return lipgloss.JoinVertical(
		lipgloss.Center,
		gameStyles.title.Render("😿 Game Over 😿"),
		"",
		gameStyles.status.Render("Your cat ran out of everything..."),
		gameStyles.coins.Render(fmt.Sprintf("Final coins: %d", m.snap.Coins)),
		"",
		gameStyles.status.Render("Press 'r' to restart, 'q' to exit"),
	)
}
