// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// Greeting is the bot turn every transcript starts with.
const Greeting = "Xin chào! Tôi là chatbot hỗ trợ onboarding. Tôi có thể giúp bạn:\n\n" +
	"🎯 Tạo lộ trình onboarding cá nhân hóa\n" +
	"📧 Tạo nội dung tự động (email, tóm tắt, câu hỏi)\n" +
	"🔍 Trích xuất thông tin từ tài liệu\n" +
	"❓ Trả lời câu hỏi về chính sách công ty\n\n" +
	"Hãy thử hỏi \"help\" để xem hướng dẫn chi tiết!"

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the author of a turn.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns the label shown above a turn.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "Bạn"
	case RoleBot:
		return "Onboarding Bot"
	default:
		return string(r)
	}
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn is one entry in a transcript. Turns are values and are never changed
// after the transcript hands them out.
type Turn struct {
	ID        int64     `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// IsBot reports whether the turn was authored by the bot.
func (t Turn) IsBot() bool {
	return t.Role == RoleBot
}

// Lines returns the content split into display lines.
func (t Turn) Lines() []string {
	return strings.Split(strings.ReplaceAll(t.Content, "\r\n", "\n"), "\n")
}

// Clock formats the timestamp the way the transcript shows it.
func (t Turn) Clock() string {
	return t.Timestamp.Format("15:04:05")
}
