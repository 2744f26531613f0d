// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"sort"
)

// =============================================================================
// MODELS
// =============================================================================

// ModelInfo describes one selectable backend model.
type ModelInfo struct {
	Key       string  // Backend model identifier
	Name      string  `json:"name"`
	CostPer1K float64 `json:"cost_per_1k"`
}

// Models returns the selectable models sorted by key, plus the backend's
// default model key.
func (c *Client) Models(ctx context.Context) ([]ModelInfo, string, error) {
	var resp struct {
		Models  map[string]ModelInfo `json:"models"`
		Default string               `json:"default"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/models", nil, &resp); err != nil {
		return nil, "", err
	}

	models := make([]ModelInfo, 0, len(resp.Models))
	for key, info := range resp.Models {
		info.Key = key
		models = append(models, info)
	}
	sort.Slice(models, func(i, j int) bool { return models[i].Key < models[j].Key })
	return models, resp.Default, nil
}

// =============================================================================
// USAGE STATS
// =============================================================================

// ModelUsage is one row of the per-model usage breakdown.
type ModelUsage struct {
	Model  string  `json:"model"`
	Tokens int     `json:"tokens"`
	Cost   float64 `json:"cost"`
}

// UsageStats is the account-level usage summary.
type UsageStats struct {
	TotalSessions  int          `json:"total_sessions"`
	TotalMessages  int          `json:"total_messages"`
	TodayTokens    int          `json:"today_tokens"`
	TodayCost      float64      `json:"today_cost"`
	ModelBreakdown []ModelUsage `json:"model_breakdown"`
}

// Stats fetches the usage summary for the logged-in user.
func (c *Client) Stats(ctx context.Context) (*UsageStats, error) {
	var resp struct {
		Stats *UsageStats `json:"stats"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/stats", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Stats == nil {
		return &UsageStats{}, nil
	}
	return resp.Stats, nil
}
