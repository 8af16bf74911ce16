package server

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/iwvelando/dealer-finance/internal/config"
	"github.com/iwvelando/dealer-finance/internal/quote"
	"github.com/iwvelando/dealer-finance/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type quotesResponse struct {
	Results    []quote.Result `json:"results"`
	CSV        string         `json:"csv"`
	Warnings   []string       `json:"warnings,omitempty"`
	Duration   string         `json:"duration"`
	ConfigYAML string         `json:"configYaml"`
}

// handleQuotes evaluates a quote configuration posted as JSON, either bare or
// wrapped in a "config" object.
func (h *handler) handleQuotes(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleQuotes"
	start := time.Now()

	payload, ok := h.decodeConfigPayload(w, r, op)
	if !ok {
		return
	}
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondErrorWithOp(w, http.StatusBadRequest, "invalid config payload: expected object", op)
			return
		}
		payload = cfgMap
	}

	configBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	if err := cfg.Validate(); err != nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
		return
	}
	warnings := cfg.ValidateConfiguration()

	// Deployment settings are not taken from the request.
	cfg.Finance = h.policy

	results, err := quote.Evaluate(h.logger, *cfg)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("quotes computed",
		zap.String("op", op),
		zap.Int("quotes", len(results)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, quotesResponse{
		Results:    results,
		CSV:        output.CsvString(results),
		Warnings:   warnings,
		Duration:   elapsed.String(),
		ConfigYAML: string(configBytes),
	})
}

// handleQuotesExport renders a posted configuration as YAML with a stable key
// order so it can be saved as a config file.
func (h *handler) handleQuotesExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleQuotesExport"
	payload, ok := h.decodeConfigPayload(w, r, op)
	if !ok {
		return
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) decodeConfigPayload(w http.ResponseWriter, r *http.Request, op string) (map[string]interface{}, bool) {
	var payload map[string]interface{}
	if !h.decodeJSON(w, r, &payload, op) {
		return nil, false
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}
	return payload, true
}

// configKeyOrder is the order of top-level sections in exported YAML; other
// keys follow alphabetically.
var configKeyOrder = []string{"logging", "output", "storage", "finance", "seed", "quotes"}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range configKeyOrder {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	return yaml.Marshal(orderedConfig{items: items})
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(normalizeJSONNumbers(item.value)); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

// normalizeJSONNumbers turns whole float64 values decoded from JSON back into
// integers so term lengths stay integers in the YAML.
func normalizeJSONNumbers(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, inner := range v {
			out[key] = normalizeJSONNumbers(inner)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, inner := range v {
			out[i] = normalizeJSONNumbers(inner)
		}
		return out
	case float64:
		if v == float64(int64(v)) {
			return int64(v)
		}
		return v
	}
	return value
}
