package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	if w == nil {
		w = os.Stdout
	}
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		o.printf("Status: %s\n", v.Status)
	case Game:
		o.printGame(v)
	case Player:
		o.printPlayer(v)
	case Member:
		o.printMember(v)
	case PlayersPage:
		o.printPlayersPage(v)
	case JoinResult:
		o.printJoin(v)
	case Tag:
		o.printf("Tag recorded: %s tagged %s (%s) at %s\n", v.Tagger, v.Taggee, v.Slot, formatTime(v.Timestamp))
	case Antivirus:
		o.printAntivirus(v)
	case Timeline:
		o.printTimeline(v)
	case Summary:
		o.printSummary(v)
	case []Mission:
		o.printMissions(v)
	case Report:
		o.printf("Report %s submitted\n", v.ID)
	case []Report:
		o.printReports(v)
	case []Clan:
		o.printClans(v)
	case []ClanHistoryItem:
		o.printClanHistory(v)
	case BodyArmor:
		o.printf("Body armor: %s\nExpires: %s\n", v.Code, formatTime(v.ExpiresAt))
	case []Scoreboard:
		o.printScoreboards(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

// Game response type
type Game struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	Active    bool      `json:"active"`
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Clan        string `json:"clan,omitempty"`
}

// Status response type
type Status struct {
	Code    string `json:"code"`
	Label   string `json:"label"`
	NumTags int    `json:"num_tags"`
}

// Member is a player with their active-game status
type Member struct {
	Player
	Status *Status `json:"status,omitempty"`
}

// PlayersPage response type
type PlayersPage struct {
	Players         []Member `json:"players"`
	TotalMatching   int      `json:"total_matching"`
	TotalUnfiltered int      `json:"total_unfiltered"`
}

// JoinResult response type
type JoinResult struct {
	GameID      string `json:"game_id"`
	PlayerID    string `json:"player_id"`
	Status      Status `json:"status"`
	Identifiers struct {
		Tag1ID   string `json:"tag1_id"`
		Tag2ID   string `json:"tag2_id"`
		ZombieID string `json:"zombie_id"`
	} `json:"identifiers"`
}

// Tag response type
type Tag struct {
	ID        string    `json:"id"`
	Tagger    string    `json:"tagger"`
	Taggee    string    `json:"taggee"`
	Slot      string    `json:"slot"`
	Timestamp time.Time `json:"timestamp"`
}

// Antivirus response type
type Antivirus struct {
	Code      string     `json:"code"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedBy    string     `json:"used_by,omitempty"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

// Point response type
type Point struct {
	Timestamp   time.Time `json:"timestamp"`
	HumanCount  int       `json:"human_count"`
	ZombieCount int       `json:"zombie_count"`
}

// Timeline response type
type Timeline struct {
	HumanCount  int     `json:"human_count"`
	ZombieCount int     `json:"zombie_count"`
	Points      []Point `json:"points"`
}

// Summary response type
type Summary struct {
	Game        Game `json:"game"`
	HumanCount  int  `json:"human_count"`
	ZombieCount int  `json:"zombie_count"`
	TopTaggers  []struct {
		DisplayName string `json:"display_name"`
		NumTags     int    `json:"num_tags"`
	} `json:"top_taggers"`
	RecentEvents []struct {
		Kind      string    `json:"kind"`
		Timestamp time.Time `json:"timestamp"`
		Subject   string    `json:"subject"`
		Tagger    string    `json:"tagger,omitempty"`
	} `json:"recent_events"`
	Scoreboards []Scoreboard `json:"scoreboards"`
}

// Mission response type
type Mission struct {
	ID          string    `json:"id"`
	Team        string    `json:"team"`
	StoryForm   string    `json:"story_form"`
	MissionText string    `json:"mission_text"`
	GoLiveTime  time.Time `json:"go_live_time"`
}

// Report response type
type Report struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	ReporterEmail string    `json:"reporter_email"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
}

// Clan response type
type Clan struct {
	Name   string `json:"name"`
	Leader string `json:"leader,omitempty"`
}

// ClanHistoryItem response type
type ClanHistoryItem struct {
	PlayerID  string    `json:"player_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// BodyArmor response type
type BodyArmor struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Scoreboard response type
type Scoreboard struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
	Rows   []struct {
		Label string `json:"label"`
		Score int    `json:"score"`
	} `json:"rows"`
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) printGame(g Game) {
	o.printf("Game: %s (%s)\n", g.Name, g.ID)
	o.printf("Start: %s\n", formatTime(g.StartDate))
	if g.Active {
		o.printf("Active: yes\n")
	}
}

func (o *Output) printPlayer(p Player) {
	o.printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	o.printf("Role: %s\n", p.Role)
	if p.Clan != "" {
		o.printf("Clan: %s\n", p.Clan)
	}
}

func (o *Output) printMember(m Member) {
	o.printPlayer(m.Player)
	if m.Status != nil {
		o.printf("Status: %s (%s)\n", m.Status.Label, m.Status.Code)
		o.printf("Tags: %d\n", m.Status.NumTags)
	} else {
		o.printf("Status: not in the active game\n")
	}
}

func (o *Output) printPlayersPage(p PlayersPage) {
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tCLAN\tSTATUS\tTAGS\tID")
	for _, m := range p.Players {
		label, tags := "-", 0
		if m.Status != nil {
			label, tags = m.Status.Label, m.Status.NumTags
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", m.DisplayName, m.Clan, label, tags, m.ID)
	}
	_ = tw.Flush()
	o.printf("Showing %d of %d (%d total)\n", len(p.Players), p.TotalMatching, p.TotalUnfiltered)
}

func (o *Output) printJoin(j JoinResult) {
	o.printf("Joined game %s as %s\n", j.GameID, j.Status.Label)
	o.printf("Tag ID 1: %s\n", j.Identifiers.Tag1ID)
	o.printf("Tag ID 2: %s\n", j.Identifiers.Tag2ID)
	o.printf("Zombie ID: %s\n", j.Identifiers.ZombieID)
}

func (o *Output) printAntivirus(av Antivirus) {
	o.printf("Antivirus: %s\n", av.Code)
	o.printf("Expires: %s\n", formatTime(av.ExpiresAt))
	if av.UsedBy != "" && av.UsedAt != nil {
		o.printf("Used by %s at %s\n", av.UsedBy, formatTime(*av.UsedAt))
	}
}

func (o *Output) printTimeline(t Timeline) {
	o.printf("Humans: %d  Zombies: %d\n", t.HumanCount, t.ZombieCount)
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TIME\tHUMANS\tZOMBIES")
	for _, p := range t.Points {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\n", formatTime(p.Timestamp), p.HumanCount, p.ZombieCount)
	}
	_ = tw.Flush()
}

func (o *Output) printSummary(s Summary) {
	o.printf("Game: %s\n", s.Game.Name)
	o.printf("Humans: %d  Zombies: %d\n", s.HumanCount, s.ZombieCount)
	if len(s.TopTaggers) > 0 {
		o.printf("\nTop taggers:\n")
		for i, t := range s.TopTaggers {
			o.printf("  %d. %s (%d)\n", i+1, t.DisplayName, t.NumTags)
		}
	}
	for _, b := range s.Scoreboards {
		o.printf("\n%s:\n", b.Name)
		for _, r := range b.Rows {
			o.printf("  %s: %d\n", r.Label, r.Score)
		}
	}
	if len(s.RecentEvents) > 0 {
		o.printf("\nRecent events:\n")
		for _, e := range s.RecentEvents {
			if e.Kind == "tag" {
				o.printf("  [%s] %s tagged %s\n", formatTime(e.Timestamp), e.Tagger, e.Subject)
			} else {
				o.printf("  [%s] %s took an antivirus\n", formatTime(e.Timestamp), e.Subject)
			}
		}
	}
}

func (o *Output) printMissions(missions []Mission) {
	if len(missions) == 0 {
		o.printf("No missions\n")
		return
	}
	for _, m := range missions {
		o.printf("[%s] %s (live %s)\n%s\n\n", m.Team, m.StoryForm, formatTime(m.GoLiveTime), m.MissionText)
	}
}

func (o *Output) printReports(reports []Report) {
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TIME\tSTATUS\tFROM\tTEXT")
	for _, r := range reports {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", formatTime(r.Timestamp), r.Status, r.ReporterEmail, truncate(r.Text, 60))
	}
	_ = tw.Flush()
}

func (o *Output) printClans(clans []Clan) {
	for _, c := range clans {
		if c.Leader != "" {
			o.printf("%s (leader %s)\n", c.Name, c.Leader)
		} else {
			o.printf("%s\n", c.Name)
		}
	}
}

func (o *Output) printClanHistory(items []ClanHistoryItem) {
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TIME\tACTION\tPLAYER")
	for _, it := range items {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", formatTime(it.Timestamp), it.Action, it.PlayerID)
	}
	_ = tw.Flush()
}

func (o *Output) printScoreboards(boards []Scoreboard) {
	if len(boards) == 0 {
		o.printf("No scoreboards\n")
		return
	}
	for _, b := range boards {
		o.printf("%s (%s)\n", b.Name, b.ID)
		for _, r := range b.Rows {
			o.printf("  %-20s %d\n", r.Label, r.Score)
		}
	}
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
