// Command travel is a small client for a running travel-server: it logs in,
// runs a flight search, and prints the JSON envelope.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "travel",
		Short: "Flight search client for travel-server",
	}

	root.PersistentFlags().String("server", "http://localhost:8080", "Base URL of the travel-server")
	root.PersistentFlags().String("user", "demo", "Login username")
	root.PersistentFlags().String("pass", "demo123", "Login password")

	root.AddCommand(searchCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func searchCmd() *cobra.Command {
	var from, to, date string
	var passengers int

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for flights",
		Example: `  travel search --from LAX --to JFK --date 2025-06-01
  travel search --from TLV --to CDG --date 2025-07-15 --passengers 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" || to == "" || date == "" {
				return cmd.Help()
			}
			server, _ := cmd.Flags().GetString("server")
			user, _ := cmd.Flags().GetString("user")
			pass, _ := cmd.Flags().GetString("pass")

			token, err := login(server, user, pass)
			if err != nil {
				return err
			}

			body, _ := json.Marshal(map[string]any{
				"from": from, "to": to, "date": date, "passengers": passengers,
			})
			req, err := http.NewRequest(http.MethodPost, server+"/api/flights", bytes.NewReader(body))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			return printJSON(resp.Body)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Origin airport code (required)")
	cmd.Flags().StringVar(&to, "to", "", "Destination airport code (required)")
	cmd.Flags().StringVar(&date, "date", "", "Departure date YYYY-MM-DD (required)")
	cmd.Flags().IntVar(&passengers, "passengers", 1, "Number of passengers")

	return cmd
}

func login(server, user, pass string) (string, error) {
	body, _ := json.Marshal(map[string]string{"username": user, "password": pass})
	resp, err := http.Post(server+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("login failed: %s: %s", resp.Status, bytes.TrimSpace(msg))
	}
	var lr struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", err
	}
	return lr.Token, nil
}

func printJSON(r io.Reader) error {
	var v any
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return err
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print travel client version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("travel v0.1.0")
		},
	}
}
