package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

// Read-only inspection CLI: fetches live state from a running chat server
// and renders it as tables. Handy while poking at the API by hand.
func main() {
	addr := flag.String("addr", "http://localhost:8080", "Base address of the chat server")
	view := flag.String("view", "users", "What to show: users | group | calls | signals")
	id := flag.String("id", "", "Group id (view=group), user id (view=calls|signals)")
	flag.Parse()

	client := &http.Client{Timeout: 5 * time.Second}

	var err error
	switch *view {
	case "users":
		err = showUsers(client, *addr)
	case "group":
		err = showGroup(client, *addr, *id)
	case "calls":
		err = showCalls(client, *addr, *id)
	case "signals":
		err = showSignals(client, *addr, *id)
	default:
		err = fmt.Errorf("unknown view %q", *view)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func banner(title string) {
	fmt.Println(color.New(color.BgBlack, color.FgGreen).Render(" " + title + " "))
}

func newTable(headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func fetch(client *http.Client, url string, out any) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func showUsers(client *http.Client, addr string) error {
	var users []struct {
		ID          string `json:"ID"`
		DisplayName string `json:"DisplayName"`
	}
	if err := fetch(client, addr+"/api/v1/users", &users); err != nil {
		return err
	}

	banner(fmt.Sprintf("USERS (%d)", len(users)))
	table := newTable([]string{"ID", "Display Name"})
	for _, user := range users {
		table.Append([]string{user.ID, user.DisplayName})
	}
	table.Render()
	return nil
}

func showGroup(client *http.Client, addr, groupID string) error {
	if groupID == "" {
		return fmt.Errorf("-id is required for view=group")
	}
	var group struct {
		ID      string   `json:"id"`
		Name    string   `json:"name"`
		OwnerID string   `json:"ownerId"`
		Members []string `json:"members"`
	}
	if err := fetch(client, addr+"/api/v1/groups/"+groupID, &group); err != nil {
		return err
	}

	banner("GROUP " + group.Name)
	table := newTable([]string{"Member", "Role"})
	for _, member := range group.Members {
		role := ""
		if member == group.OwnerID {
			role = "owner"
		}
		table.Append([]string{member, role})
	}
	table.Render()
	return nil
}

func showCalls(client *http.Client, addr, userID string) error {
	if userID == "" {
		return fmt.Errorf("-id is required for view=calls")
	}
	var calls []struct {
		ID           string    `json:"id"`
		CallerID     string    `json:"callerId"`
		TargetID     string    `json:"targetId"`
		Status       string    `json:"status"`
		Kind         string    `json:"kind"`
		StartedAt    time.Time `json:"startedAt"`
		Participants []string  `json:"participants"`
	}
	if err := fetch(client, addr+"/api/v1/users/"+userID+"/calls", &calls); err != nil {
		return err
	}

	banner(fmt.Sprintf("ACTIVE CALLS FOR %s (%d)", userID, len(calls)))
	table := newTable([]string{"Call", "Kind", "Status", "Caller", "Target", "Started", "Participants"})
	for _, call := range calls {
		table.Append([]string{
			call.ID,
			call.Kind,
			call.Status,
			call.CallerID,
			call.TargetID,
			call.StartedAt.Format(time.RFC822),
			strconv.Itoa(len(call.Participants)),
		})
	}
	table.Render()
	return nil
}

func showSignals(client *http.Client, addr, userID string) error {
	if userID == "" {
		return fmt.Errorf("-id is required for view=signals")
	}
	var signals []struct {
		ID         string `json:"ID"`
		CallID     string `json:"CallID"`
		FromUserID string `json:"FromUserID"`
		Type       string `json:"Type"`
		SDP        string `json:"SDP"`
		Candidate  string `json:"Candidate"`
	}
	if err := fetch(client, addr+"/api/v1/users/"+userID+"/signals", &signals); err != nil {
		return err
	}

	banner(fmt.Sprintf("PENDING SIGNALS FOR %s (%d)", userID, len(signals)))
	table := newTable([]string{"Signal", "Call", "From", "Type", "Payload"})
	for _, signal := range signals {
		payload := signal.SDP
		if signal.Candidate != "" {
			payload = signal.Candidate
		}
		table.Append([]string{signal.ID, signal.CallID, signal.FromUserID, signal.Type, truncate(payload, 40)})
	}
	table.Render()
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max]) + "..."
}
