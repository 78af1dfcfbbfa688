package kkcard

import (
	"slices"
)

// CardSummary is a compact, display oriented summary of a card
type CardSummary struct {
	Header   Header    `json:"header"`
	Product  string    `json:"product"`
	Name     string    `json:"name,omitempty"`
	Nickname string    `json:"nickname,omitempty"`
	Birthday *Birthday `json:"birthday,omitempty"`
	Sex      *int64    `json:"sex,omitempty"`
	HasKKEx  bool      `json:"hasKKEx"`
	Blocks   []string  `json:"blocks"`
}

type Birthday struct {
	Month *int64 `json:"month,omitempty"`
	Day   *int64 `json:"day,omitempty"`
}

// Summarize derives the summary of a parsed card
func Summarize(card *Card) *CardSummary {
	blocks := card.BlockNames()
	result := &CardSummary{
		Header:  card.Header,
		Product: card.Header.Header,
		HasKKEx: slices.Contains(blocks, BlockKKEx),
		Blocks:  blocks,
	}
	if param, ok := card.Parameter(); ok {
		result.Name = param.FullName()
		result.Nickname, _ = param.Nickname()
		month, mok := param.BirthMonth()
		day, dok := param.BirthDay()
		if mok || dok {
			result.Birthday = &Birthday{}
			if mok {
				result.Birthday.Month = &month
			}
			if dok {
				result.Birthday.Day = &day
			}
		}
		if sex, ok := param.Sex(); ok {
			result.Sex = &sex
		}
	}
	return result
}
