package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{} // No timeout, generation can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Starting Advisor Chat API smoke test\n")

	token := os.Getenv("FOUNDER_TOKEN")
	if token == "" {
		color.Red("FOUNDER_TOKEN not set. Sign in via /auth/v1/magic-link + /auth/v1/exchange and export the token.")
		os.Exit(1)
	}
	founderID := os.Getenv("FOUNDER_ID")

	// 1. Health
	color.Yellow("\n[1] Health check")
	resp, body, err := sendRequest("GET", "/health/v1", "", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var healthResp map[string]interface{}
	json.Unmarshal(body, &healthResp)
	prettyPrint(healthResp)

	// 2. Plain chat with the Shark VC
	color.Yellow("\n[2] Chat (Shark VC)")
	chatReq := map[string]interface{}{
		"persona": "Shark VC",
		"message": "We are raising a $1M seed round at a $8M cap. Fair?",
	}
	resp, body, err = sendRequest("POST", "/chat/v1", token, chatReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var chatResp map[string]interface{}
	json.Unmarshal(body, &chatResp)
	prettyPrint(chatResp)

	// 3. Follow-up, memory should carry the round context
	color.Yellow("\n[3] Follow-up chat")
	chatReq["message"] = "And what valuation would you offer?"
	resp, body, err = sendRequest("POST", "/chat/v1", token, chatReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	json.Unmarshal(body, &chatResp)
	prettyPrint(chatResp)

	// 4. Analysis (404 until a document is uploaded)
	if founderID != "" {
		color.Yellow("\n[4] Analysis report")
		resp, body, err = sendRequest("POST", "/analysis/v1/"+founderID, token, nil)
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
		color.Green("Status: %s", resp.Status)
		var analysisResp map[string]interface{}
		json.Unmarshal(body, &analysisResp)
		prettyPrint(analysisResp)

		// 5. Reset
		color.Yellow("\n[5] Reset sessions")
		resp, body, err = sendRequest("POST", "/chat/v1/reset/"+founderID+"?persona=Shark+VC", token, nil)
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
		color.Green("Status: %s", resp.Status)
		var resetResp map[string]interface{}
		json.Unmarshal(body, &resetResp)
		prettyPrint(resetResp)
	} else {
		color.Yellow("\nFOUNDER_ID not set, skipping analysis and reset checks")
	}

	color.Cyan("\n✅ Smoke test finished")
}
