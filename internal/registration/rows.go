package registration

import (
	"strings"
	"time"

	"github.com/gdg-garage/event-registration-api/internal/models"
)

const timestampLayout = "2006-01-02T15:04:05.000Z"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// splitList splits a comma-separated field and trims every element.
// An empty field yields a single empty element.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func at(list []string, i int) string {
	if i < len(list) {
		return list[i]
	}
	return ""
}

// membersFromLists zips comma-separated member fields. The result has as many
// members as the longest list; missing elements are empty.
func membersFromLists(names, rollNumbers, phones string) []models.Member {
	n, r, p := splitList(names), splitList(rollNumbers), splitList(phones)
	size := max(len(n), len(r), len(p))

	members := make([]models.Member, size)
	for i := range members {
		members[i] = models.Member{
			Name:       at(n, i),
			RollNumber: at(r, i),
			Phone:      at(p, i),
		}
	}
	return members
}

func soloRow(reg models.Registration) []string {
	return []string{
		formatTimestamp(reg.Timestamp),
		reg.Name,
		reg.Email,
		reg.Phone,
		reg.RollNumber,
	}
}

func teamRows(reg models.Registration) [][]string {
	ts := formatTimestamp(reg.Timestamp)
	rows := make([][]string, 0, len(reg.Members))
	for _, m := range reg.Members {
		rows = append(rows, []string{ts, reg.TeamID, m.Name, m.RollNumber, reg.Email, m.Phone})
	}
	return rows
}
