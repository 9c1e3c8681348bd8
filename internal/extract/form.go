// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import (
	"strings"

	"github.com/jeranaias/onboard-tui/internal/api"
)

// Field describes one employee form field.
type Field struct {
	Key       string
	Label     string
	Multiline bool
}

// Fields is the employee form schema in display order.
var Fields = []Field{
	{Key: "full_name", Label: "Họ và tên"},
	{Key: "email", Label: "Email"},
	{Key: "phone", Label: "Số điện thoại"},
	{Key: "address", Label: "Địa chỉ"},
	{Key: "date_of_birth", Label: "Ngày sinh"},
	{Key: "id_number", Label: "Số CMND/CCCD"},
	{Key: "education", Label: "Học vấn"},
	{Key: "experience", Label: "Kinh nghiệm", Multiline: true},
	{Key: "skills", Label: "Kỹ năng", Multiline: true},
	{Key: "position_applied", Label: "Vị trí ứng tuyển"},
}

// Form is the employee form: field key to value.
type Form map[string]string

// DeriveForm fills the employee form from extracted CV data.
func DeriveForm(d *api.ExtractedData) Form {
	if d == nil {
		return Form{}
	}
	p := d.PersonalInfo

	dob := ""
	if p.BirthDate != "" {
		dob = ConvertToISO(p.BirthDate.String())
	}

	education := make([]string, 0, len(d.Education))
	for _, e := range d.Education {
		education = append(education, e.Degree.String()+" - "+e.School.String())
	}

	experience := make([]string, 0, len(d.Experience))
	for _, e := range d.Experience {
		experience = append(experience, e.Position.String()+" tại "+e.Company.String())
	}

	skills := make([]string, 0, len(d.Skills.Technical)+len(d.Skills.Languages))
	for _, s := range d.Skills.Technical {
		skills = append(skills, s.String())
	}
	for _, s := range d.Skills.Languages {
		skills = append(skills, s.String())
	}

	return Form{
		"full_name":        p.FullName.String(),
		"email":            p.Email.String(),
		"phone":            p.Phone.String(),
		"address":          p.Address.String(),
		"date_of_birth":    dob,
		"id_number":        p.IDNumber.String(),
		"education":        strings.Join(education, ", "),
		"experience":       strings.Join(experience, "\n"),
		"skills":           strings.Join(skills, ", "),
		"position_applied": PositionApplied(d.Experience),
	}
}

// ConvertToISO turns a D/M/Y date into YYYY-MM-DD with zero padding.
// Strings that are not three slash-separated parts are returned trimmed
// but otherwise unchanged.
func ConvertToISO(date string) string {
	date = strings.TrimSpace(date)
	parts := strings.Split(date, "/")
	if len(parts) != 3 {
		return date
	}
	day := strings.TrimSpace(parts[0])
	month := strings.TrimSpace(parts[1])
	year := strings.TrimSpace(parts[2])
	return year + "-" + padTwo(month) + "-" + padTwo(day)
}

func padTwo(s string) string {
	if len(s) < 2 {
		return strings.Repeat("0", 2-len(s)) + s
	}
	return s
}

// PositionApplied picks the current job: the first entry whose duration
// mentions "nay" or "present", otherwise the last entry.
func PositionApplied(exps []api.Experience) string {
	if len(exps) == 0 {
		return ""
	}
	for _, e := range exps {
		d := strings.ToLower(e.Duration.String())
		if strings.Contains(d, "nay") || strings.Contains(d, "present") {
			return e.Position.String()
		}
	}
	return exps[len(exps)-1].Position.String()
}
