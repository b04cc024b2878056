/*
   Copyright 2019-2020 Arboria Project

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package log

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestSetLoggerLevels(t *testing.T) {
	defer SetLogger("TestSetLoggerLevels", ERROR)

	testCases := []struct {
		level    string
		expected string
	}{
		{SILENT, SILENT},
		{ERROR, ERROR},
		{INFO, INFO},
		{DEBUG, DEBUG},
		{"bogus", INFO},
	}

	for _, c := range testCases {
		SetLogger("TestSetLoggerLevels", c.level)
		assert.Equalf(t, c.expected, GetLoggerLevel(), "Unexpected level for %q", c.level)
	}
}

func TestErrorStopsExecution(t *testing.T) {
	defer func(f func(int)) { osExit = f }(osExit)
	defer SetLogger("TestErrorStopsExecution", ERROR)

	var code int
	osExit = func(c int) { code = c }

	SetLogger("TestErrorStopsExecution", SILENT)
	Error("boom")
	assert.Equal(t, 1, code, "Error must exit with code 1")
}
