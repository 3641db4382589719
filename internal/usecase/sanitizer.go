package usecase

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Model responses rarely arrive as the clean JSON list the prompts ask for.
// The sanitizers below try progressively looser readings of the raw text and
// stop at the first one that yields anything; a response nothing can be read
// from degrades to an empty list, never an error.

var (
	bracketSpanRegex   = regexp.MustCompile(`(?s)\[.*?\]`)
	trailingCommaRegex = regexp.MustCompile(`,\s*]`)
	doubleQuotedRegex  = regexp.MustCompile(`"([^"]+)"`)
	singleQuotedRegex  = regexp.MustCompile(`'([^']+)'`)
)

// SanitizeIntList extracts a list of non-negative integers from a raw model
// response.
func SanitizeIntList(response string) []int {
	response = preclean(response)

	// Responses like {"1, 8":null} where the ids ended up inside one key
	if strings.HasPrefix(response, "{") {
		if ids := intsFromObjectKeys(response); len(ids) > 0 {
			return ids
		}
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(response), &parsed); err == nil {
		if ids := intsFromValue(parsed); len(ids) > 0 {
			return ids
		}
	}

	if snippet := bracketSpanRegex.FindString(response); snippet != "" {
		snippet = trailingCommaRegex.ReplaceAllString(snippet, "]")
		var list []interface{}
		if err := json.Unmarshal([]byte(snippet), &list); err == nil {
			if ids := intsFromList(list); len(ids) > 0 {
				return ids
			}
		}
	}

	return []int{}
}

// SanitizeStringList extracts a list of strings from a raw model response.
// The last resort scrapes quoted substrings out of otherwise unparseable text.
func SanitizeStringList(response string) []string {
	response = preclean(response)

	var parsed interface{}
	if err := json.Unmarshal([]byte(response), &parsed); err == nil {
		if names := stringsFromValue(parsed); len(names) > 0 {
			return names
		}
	}

	if snippet := bracketSpanRegex.FindString(response); snippet != "" {
		snippet = trailingCommaRegex.ReplaceAllString(snippet, "]")
		var list []interface{}
		if err := json.Unmarshal([]byte(snippet), &list); err == nil {
			if names := stringsFromList(list); len(names) > 0 {
				return names
			}
		}
	}

	if matches := doubleQuotedRegex.FindAllStringSubmatch(response, -1); len(matches) > 0 {
		return submatchStrings(matches)
	}
	if matches := singleQuotedRegex.FindAllStringSubmatch(response, -1); len(matches) > 0 {
		return submatchStrings(matches)
	}

	return []string{}
}

// preclean undoes the quoting damage models commonly inflict: escaped double
// quotes and single-quoted pseudo-JSON.
func preclean(response string) string {
	response = strings.TrimSpace(response)
	response = strings.ReplaceAll(response, `\"`, `"`)
	response = strings.ReplaceAll(response, `'`, `"`)
	return response
}

func intsFromObjectKeys(response string) []int {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(response), &obj); err != nil {
		return nil
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if len(keys) == 1 && strings.Contains(keys[0], ",") {
		var ids []int
		for _, part := range strings.Split(keys[0], ",") {
			if n, ok := digitsToInt(strings.TrimSpace(part)); ok {
				ids = append(ids, n)
			}
		}
		return ids
	}

	var ids []int
	for _, k := range keys {
		if n, ok := digitsToInt(k); ok {
			ids = append(ids, n)
		}
	}
	return ids
}

func intsFromValue(parsed interface{}) []int {
	switch v := parsed.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var ids []int
		for _, k := range keys {
			if n, ok := digitsToInt(k); ok {
				ids = append(ids, n)
			}
		}
		return ids
	case []interface{}:
		return intsFromList(v)
	}
	return nil
}

func intsFromList(list []interface{}) []int {
	var ids []int
	for _, item := range list {
		switch v := item.(type) {
		case float64:
			if v >= 0 && v == float64(int(v)) {
				ids = append(ids, int(v))
			}
		case string:
			if n, ok := digitsToInt(v); ok {
				ids = append(ids, n)
			}
		}
	}
	return ids
}

func stringsFromValue(parsed interface{}) []string {
	switch v := parsed.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			if k != "" {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		return keys
	case []interface{}:
		return stringsFromList(v)
	}
	return nil
}

func stringsFromList(list []interface{}) []string {
	var names []string
	for _, item := range list {
		switch v := item.(type) {
		case string:
			if v != "" {
				names = append(names, v)
			}
		case float64:
			if v != 0 {
				names = append(names, strconv.FormatFloat(v, 'f', -1, 64))
			}
		case bool:
			if v {
				names = append(names, fmt.Sprint(v))
			}
		}
	}
	return names
}

func submatchStrings(matches [][]string) []string {
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// digitsToInt parses a string made up exclusively of decimal digits. Signs,
// spaces and decimal points all disqualify, mirroring a plain digits check.
func digitsToInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
