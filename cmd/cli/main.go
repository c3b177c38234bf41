package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "auth":
		handleAuth(args)
	case "candidate":
		handleCandidate(args)
	case "export":
		handleExport(args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: candidatetrack auth <login|logout|who>")
		return
	}

	subCmd := args[0]
	switch subCmd {
	case "login":
		loginAdmin(args[1:])
	case "logout":
		logoutAdmin()
	case "who":
		whoAmI()
	default:
		fmt.Printf("unknown auth command: %s\n", subCmd)
	}
}

func handleCandidate(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: candidatetrack candidate <list|show|stage|delete>")
		return
	}

	subCmd := args[0]
	switch subCmd {
	case "list":
		listCandidates(args[1:])
	case "show":
		showCandidate(args[1:])
	case "stage":
		changeStage(args[1:])
	case "delete":
		deleteCandidate(args[1:])
	default:
		fmt.Printf("unknown candidate command: %s\n", subCmd)
	}
}

func handleExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "candidates.csv", "output file")
	fs.Parse(args)

	req, _ := http.NewRequest("GET", getAPIURL()+"/admin/export.csv", nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		fmt.Printf("✗ Export failed: %s\n", resp.Status)
		return
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer f.Close()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("✓ Exported %d bytes to %s\n", n, *out)
}

// Auth commands
func loginAdmin(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "admin email")
	password := fs.String("password", "", "password")

	fs.Parse(args)

	if *email == "" || *password == "" {
		fmt.Println("Error: email and password are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]string{"email": *email, "password": *password}
	data, _ := json.Marshal(payload)
	resp, err := http.Post(getAPIURL()+"/admin/login", "application/json", bytes.NewReader(data))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode == 200 {
		if token, ok := result["token"].(string); ok {
			saveToken(token)
			fmt.Printf("✓ Logged in as: %s\n", *email)
		}
	} else {
		fmt.Printf("✗ Login failed: %v\n", result)
	}
}

func logoutAdmin() {
	os.Remove(tokenFile())
	fmt.Println("✓ Logged out")
}

func whoAmI() {
	token := loadToken()
	if token == "" {
		fmt.Println("Not logged in")
		return
	}
	fmt.Printf("✓ Logged in (token: %s...)\n", token[:20])
}

// Candidate commands
func listCandidates(args []string) {
	_ = args
	req, _ := http.NewRequest("GET", getAPIURL()+"/admin/candidates", nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result struct {
		Candidates []map[string]interface{} `json:"candidates"`
	}
	json.NewDecoder(resp.Body).Decode(&result)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSTATUS\tSTAGE\tSCORE")
	for _, c := range result.Candidates {
		stage := ""
		if ad, ok := c["adminData"].(map[string]interface{}); ok {
			stage, _ = ad["pipelineStage"].(string)
		}
		score := ""
		if s, ok := c["score"].(float64); ok {
			score = fmt.Sprintf("%.0f", s)
		}
		fmt.Fprintf(w, "%v\t%v %v\t%v\t%v\t%v\t%v\n",
			c["id"], c["firstName"], c["lastName"], c["email"], c["status"], stage, score)
	}
	w.Flush()
}

func showCandidate(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: candidatetrack candidate show <candidate-id>")
		return
	}

	req, _ := http.NewRequest("GET", getAPIURL()+"/admin/candidates/"+args[0], nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		fmt.Printf("✗ Lookup failed: %s\n", resp.Status)
		return
	}

	var buf bytes.Buffer
	io.Copy(&buf, resp.Body)
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf.Bytes(), "", "  "); err != nil {
		fmt.Println(buf.String())
		return
	}
	fmt.Println(pretty.String())
}

func changeStage(args []string) {
	fs := flag.NewFlagSet("stage", flag.ExitOnError)
	stage := fs.String("stage", "", "target pipeline stage")
	fs.Parse(args)

	if fs.NArg() < 1 || *stage == "" {
		fmt.Println("Usage: candidatetrack candidate stage -stage <stage> <candidate-id>")
		return
	}

	payload := map[string]string{"pipelineStage": *stage}
	data, _ := json.Marshal(payload)
	req, _ := http.NewRequest("PATCH", getAPIURL()+"/admin/candidates/"+fs.Arg(0), bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == 200 {
		fmt.Printf("✓ Moved %s to %s\n", fs.Arg(0), *stage)
	} else {
		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)
		fmt.Printf("✗ Stage change failed: %v\n", result)
	}
}

func deleteCandidate(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: candidatetrack candidate delete <candidate-id>")
		return
	}

	req, _ := http.NewRequest("DELETE", getAPIURL()+"/admin/candidates/"+args[0], nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == 204 {
		fmt.Printf("✓ Deleted %s\n", args[0])
	} else {
		fmt.Printf("✗ Delete failed: %s\n", resp.Status)
	}
}

// Helper functions
func getAPIURL() string {
	if url := os.Getenv("CANDIDATETRACK_API"); url != "" {
		return url
	}
	return "http://localhost:8080/api"
}

func tokenFile() string {
	home, _ := os.UserHomeDir()
	return home + "/.candidatetrack/token"
}

func saveToken(token string) error {
	home, _ := os.UserHomeDir()
	os.MkdirAll(home+"/.candidatetrack", 0700)
	return os.WriteFile(tokenFile(), []byte(token), 0600)
}

func loadToken() string {
	data, _ := os.ReadFile(tokenFile())
	return string(data)
}

func addAuthHeader(req *http.Request) {
	token := loadToken()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func printUsage() {
	fmt.Print(`CandidateTrack CLI

Usage:
  candidatetrack <command> [options]

Commands:
  auth       Admin authentication (login, logout, who)
  candidate  Candidate operations (list, show, stage, delete)
  export     Download the candidate CSV export
  help       Show this help message

Environment Variables:
  CANDIDATETRACK_API    API endpoint (default: http://localhost:8080/api)

Examples:
  candidatetrack auth login -email admin@example.com -password pass
  candidatetrack candidate list
  candidatetrack candidate stage -stage Interviewed A1B2C3D4
  candidatetrack export -out candidates.csv
`)
}
