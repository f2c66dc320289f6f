package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Alternative is one transcript hypothesis from the speech capability.
type Alternative struct {
	Transcript string
	Confidence float64
}

// Recognizer defines the interface to a speech-recognition capability.
// It returns the alternatives of the first result; no results at all is a
// valid outcome and yields an empty slice, not an error.
type Recognizer interface {
	Recognize(ctx context.Context, pcm []byte, sampleRateHz int, languageCode string) ([]Alternative, error)
}

// GoogleRecognizer implements Recognizer using the Google Cloud
// Speech-to-Text REST API.
type GoogleRecognizer struct {
	apiKey     string
	httpClient *http.Client
	useAPIKey  bool
}

// NewGoogleRecognizer creates a Google recognizer. keyData can be either:
//   - An API key (39 characters, typically starts with "AIzaSy")
//   - A file path to a service-account JSON key file
//   - A JSON string containing the service-account credentials
func NewGoogleRecognizer(keyData string) (*GoogleRecognizer, error) {
	keyData = strings.TrimSpace(keyData)
	if keyData == "" {
		return nil, fmt.Errorf("speech key data is empty")
	}

	if len(keyData) == 39 && strings.HasPrefix(keyData, "AIzaSy") {
		log.Printf("[Speech] Using API key authentication")
		return &GoogleRecognizer{
			apiKey:     keyData,
			httpClient: &http.Client{Timeout: 90 * time.Second},
			useAPIKey:  true,
		}, nil
	}

	// Service account: JSON string or key file path.
	ctx := context.Background()
	jsonData := []byte(keyData)
	if !strings.HasPrefix(keyData, "{") {
		log.Printf("[Speech] Reading key file: %s", keyData)
		b, err := os.ReadFile(keyData)
		if err != nil {
			return nil, fmt.Errorf("failed to read key file '%s': %w", keyData, err)
		}
		jsonData = b
	}

	creds, err := google.CredentialsFromJSON(ctx, jsonData, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return nil, fmt.Errorf("failed to create credentials from JSON: %w", err)
	}

	return &GoogleRecognizer{
		httpClient: oauth2.NewClient(ctx, creds.TokenSource),
		useAPIKey:  false,
	}, nil
}

type googleRecognizeRequest struct {
	Config googleRecognizeConfig `json:"config"`
	Audio  googleRecognizeAudio  `json:"audio"`
}

type googleRecognizeConfig struct {
	Encoding                   string `json:"encoding"`
	SampleRateHertz            int    `json:"sampleRateHertz"`
	LanguageCode               string `json:"languageCode"`
	EnableAutomaticPunctuation bool   `json:"enableAutomaticPunctuation"`
}

type googleRecognizeAudio struct {
	Content string `json:"content"` // Base64 encoded
}

type googleRecognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"results"`
	Error *googleAPIError `json:"error,omitempty"`
}

type googleAPIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Recognize sends LINEAR16 audio to the Speech-to-Text API and returns the
// alternatives of the first result.
func (r *GoogleRecognizer) Recognize(ctx context.Context, pcm []byte, sampleRateHz int, languageCode string) ([]Alternative, error) {
	reqBody := googleRecognizeRequest{
		Config: googleRecognizeConfig{
			Encoding:                   "LINEAR16",
			SampleRateHertz:            sampleRateHz,
			LanguageCode:               languageCode,
			EnableAutomaticPunctuation: true,
		},
		Audio: googleRecognizeAudio{
			Content: base64.StdEncoding.EncodeToString(pcm),
		},
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &TranscriptionError{Message: fmt.Sprintf("failed to marshal request: %v", err)}
	}

	apiURL := "https://speech.googleapis.com/v1/speech:recognize"
	if r.useAPIKey {
		apiURL += "?key=" + r.apiKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(reqJSON))
	if err != nil {
		return nil, &TranscriptionError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	log.Printf("[Speech] Calling Speech-to-Text API (rate=%d, lang=%s, %d bytes)",
		sampleRateHz, languageCode, len(pcm))
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, &TranscriptionError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TranscriptionError{Message: fmt.Sprintf("failed to read response body: %v", err)}
	}

	var sttResp googleRecognizeResponse
	if jsonErr := json.Unmarshal(body, &sttResp); jsonErr != nil && resp.StatusCode == http.StatusOK {
		return nil, &TranscriptionError{Message: fmt.Sprintf("failed to parse response: %v", jsonErr)}
	}

	if resp.StatusCode != http.StatusOK || sttResp.Error != nil {
		apiErr := sttResp.Error
		if apiErr == nil {
			apiErr = &googleAPIError{Status: resp.Status, Message: string(body)}
		}
		log.Printf("[Speech] API error: status=%s message=%s", apiErr.Status, apiErr.Message)
		return nil, &TranscriptionError{Status: apiErr.Status, Message: apiErr.Message}
	}

	if len(sttResp.Results) == 0 {
		log.Printf("[Speech] No results returned (no speech detected)")
		return nil, nil
	}

	first := sttResp.Results[0]
	alts := make([]Alternative, 0, len(first.Alternatives))
	for _, a := range first.Alternatives {
		alts = append(alts, Alternative{Transcript: a.Transcript, Confidence: a.Confidence})
	}
	return alts, nil
}
