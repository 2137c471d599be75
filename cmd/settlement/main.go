package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"
)

var (
	settlementDataDir = appDataDir()
	statePath         = path.Join(settlementDataDir, "state.json")

	httpClient = &http.Client{Timeout: 30 * time.Second}
)

func main() {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "settlement operator CLI"
	app.Usage = "Command line interface for settlementd daemon operators"
	app.Commands = append(
		app.Commands,
		&cliConfig,
		&createescrow,
		&listescrows,
		&escrow,
		&release,
		&dispute,
		&evidence,
		&resolve,
		&analytics,
		&rates,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func appDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".settlement-operator"
	}
	return filepath.Join(home, ".settlement-operator")
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := os.ReadFile(statePath)
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	json.Unmarshal(file, &data)

	return data, nil
}

func setState(data map[string]string) error {
	if _, err := os.Stat(settlementDataDir); os.IsNotExist(err) {
		os.Mkdir(settlementDataDir, os.ModeDir|0755)
	}

	currentData, _ := getState()
	mergedData := merge(currentData, data)

	jsonString, err := json.Marshal(mergedData)
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath, jsonString, 0644); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged
}

func getBaseURL() string {
	state, err := getState()
	if err != nil {
		return "http://localhost:9945"
	}
	if url, ok := state["apiserver"]; ok && url != "" {
		return url
	}
	return "http://localhost:9945"
}

func callAPI(method, path string, payload interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, getBaseURL()+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rs, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer rs.Body.Close()

	responseBody, err := io.ReadAll(rs.Body)
	if err != nil {
		return err
	}
	if rs.StatusCode < 200 || rs.StatusCode >= 300 {
		return fmt.Errorf("daemon responded with status %d: %s",
			rs.StatusCode, responseBody)
	}

	printRespJSON(responseBody)
	return nil
}

func printRespJSON(raw []byte) {
	if len(raw) == 0 {
		fmt.Println("ok")
		return
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, raw, "", "\t"); err != nil {
		fmt.Println(string(raw))
		return
	}
	fmt.Println(indented.String())
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[settlement] %v\n", err)
	os.Exit(1)
}
