// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package model

import (
	"strconv"
	"strings"
)

// incrementTrailingDigits increments the trailing run of digits in s,
// preserving width: "B-0001" -> "B-0002", "XY-9" -> "XY-10". A string with
// no trailing digits gets "1" appended (spec §3).
func incrementTrailingDigits(s string) string {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	prefix, digits := s[:i], s[i:]
	if digits == "" {
		return s + "1"
	}
	width := len(digits)
	n, _ := strconv.Atoi(digits)
	n++
	next := strconv.Itoa(n)
	if len(next) < width {
		next = strings.Repeat("0", width-len(next)) + next
	}
	return prefix + next
}

// ExpandManifestRow expands one manifest row, which may compactly
// represent numberOfBallots consecutive ballots, into the individual
// BallotLocators it denotes. position must parse as the row's starting
// 1-based integer position; stamp and bid auto-increment alongside it.
func ExpandManifestRow(box, position, stamp, bid string, numberOfBallots int) ([]BallotLocator, error) {
	if numberOfBallots < 1 {
		return nil, &ManifestArithmeticError{Detail: "number_of_ballots must be >= 1, got " + strconv.Itoa(numberOfBallots)}
	}
	startPos, err := strconv.Atoi(position)
	if err != nil {
		return nil, &ManifestArithmeticError{Detail: "position is not an integer: " + position}
	}

	rows := make([]BallotLocator, numberOfBallots)
	curStamp, curBID := stamp, bid
	for i := 0; i < numberOfBallots; i++ {
		rows[i] = BallotLocator{
			Box:      box,
			Position: startPos + i,
			Stamp:    curStamp,
			BID:      curBID,
		}
		curStamp = incrementTrailingDigits(curStamp)
		curBID = incrementTrailingDigits(curBID)
	}
	return rows, nil
}
