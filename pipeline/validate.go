// Copyright (c) 2025 Niema Moshiri and The Zaparoo Project.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of go-romtext.
//
// go-romtext is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-romtext is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-romtext.  If not, see <https://www.gnu.org/licenses/>.

package pipeline

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// minMessageReadability is the readable rune share a valid message must
// exceed.
const minMessageReadability = 0.7

// IssueKind classifies a suspect message.
type IssueKind string

// Issue kinds.
const (
	IssueLowReadability  IssueKind = "low_readability"
	IssueInvalidSequence IssueKind = "invalid_sequence"
)

// Issue is a message that probably did not decode to real text.
type Issue struct {
	Segment     string
	Index       int
	Offset      int
	Kind        IssueKind
	Readability float64
}

// ValidationReport summarizes how plausible an extraction looks.
type ValidationReport struct {
	Total       int
	Valid       int
	SuccessRate float64
	Issues      []Issue
}

var (
	placeholderPattern = regexp.MustCompile(`\[[0-9A-F]{2}\]`)
	placeholderRun     = regexp.MustCompile(`(?:\[[0-9A-F]{2}\]){3,}`)
)

// Validate checks every message of res. A message is valid when more than
// 70% of its characters are printable text outside placeholders and it has
// no run of three or more placeholders.
func Validate(res *Result) ValidationReport {
	var report ValidationReport
	for _, name := range res.Order {
		for _, msg := range res.Segments[name] {
			report.Total++

			readability := messageReadability(msg.Text)
			switch {
			case placeholderRun.MatchString(msg.Text):
				report.Issues = append(report.Issues, Issue{
					Segment: name, Index: msg.Index, Offset: msg.Offset,
					Kind: IssueInvalidSequence, Readability: readability,
				})
			case readability <= minMessageReadability:
				report.Issues = append(report.Issues, Issue{
					Segment: name, Index: msg.Index, Offset: msg.Offset,
					Kind: IssueLowReadability, Readability: readability,
				})
			default:
				report.Valid++
			}
		}
	}
	if report.Total > 0 {
		report.SuccessRate = float64(report.Valid) / float64(report.Total)
	}
	return report
}

// messageReadability returns the share of runes that are printable and not
// part of a placeholder.
func messageReadability(text string) float64 {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	stripped := placeholderPattern.ReplaceAllString(text, "")
	unreadable := n - utf8.RuneCountInString(stripped)
	for _, r := range stripped {
		if !unicode.IsPrint(r) {
			unreadable++
		}
	}
	return float64(n-unreadable) / float64(n)
}
