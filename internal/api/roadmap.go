// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "context"

// GenerateRoadmap asks for an onboarding roadmap for a position and level.
func (c *Client) GenerateRoadmap(ctx context.Context, position, level string) (*RoadmapResponse, error) {
	req := RoadmapRequest{Position: position, ExperienceLevel: level}

	var result RoadmapResponse
	if err := c.postJSON(ctx, "/api/roadmap/generate", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Positions lists the positions the backend has roadmap templates for.
func (c *Client) Positions(ctx context.Context) ([]string, error) {
	var result positionsResponse
	if err := c.getJSON(ctx, "/api/roadmap/positions", &result); err != nil {
		return nil, err
	}
	if len(result.Positions) == 0 {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "response has no positions"}
	}
	return result.Positions, nil
}
