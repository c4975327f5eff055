package filter

import (
	"strings"
	"unicode"
)

const (
	negationPrefix      = "!"
	commentPrefix       = "#"
	anchorPrefix        = "/"
	directorySuffix     = "/"
	singleSegmentChar   = `[^\x2f]`
	literalSpace        = "[ ]"
	literalQuestion     = "[?]"
	regexMetaToEscape   = "+(){}|^$"
	bracketMetaToEscape = `]\[^-*`
	bracketOpen         = '['
	bracketClose        = ']'
	escapeCharacter     = '\\'
	bracketNegationBang = '!'
)

// trimPatternLine removes the line ending and trailing blanks, keeping a
// trailing space that is escaped with a backslash.
func trimPatternLine(line string) string {
	line = strings.TrimRight(line, "\r")
	end := len(line)
	for end > 0 && (line[end-1] == ' ' || line[end-1] == '\t') {
		backslashes := 0
		for index := end - 2; index >= 0 && line[index] == escapeCharacter; index-- {
			backslashes++
		}
		if backslashes%2 == 1 {
			break
		}
		end--
	}
	return line[:end]
}

// translatePattern rewrites one gitignore line into the dialect compiled by
// go-gitignore. It returns false for blank lines and comments.
//
// go-gitignore only anchors patterns that start with "/", treats "?" as a
// literal and passes regexp metacharacters through, so the pattern is
// anchored when it has a slash before its end and every character outside
// the wildcard set is made literal.
func translatePattern(line string) (string, bool) {
	pattern := trimPatternLine(line)
	if pattern == "" || strings.HasPrefix(pattern, commentPrefix) {
		return "", false
	}
	negated := strings.HasPrefix(pattern, negationPrefix)
	body := strings.TrimPrefix(pattern, negationPrefix)
	if body == "" {
		return "", false
	}
	if strings.HasPrefix(body, commentPrefix) || strings.HasPrefix(body, negationPrefix) {
		body = string(escapeCharacter) + body
	}
	if !strings.HasPrefix(body, anchorPrefix) && strings.Contains(strings.TrimSuffix(body, directorySuffix), anchorPrefix) {
		body = anchorPrefix + body
	}
	translated := translateGlob([]rune(body))
	if negated {
		return negationPrefix + translated, true
	}
	return translated, true
}

func translateGlob(runes []rune) string {
	var builder strings.Builder
	leadingBlank := true
	for index := 0; index < len(runes); index++ {
		character := runes[index]
		if character != ' ' {
			leadingBlank = false
		}
		switch {
		case character == escapeCharacter:
			if index+1 == len(runes) {
				builder.WriteString(`\\`)
				continue
			}
			index++
			builder.WriteString(literalCharacter(runes[index]))
		case character == '?':
			builder.WriteString(singleSegmentChar)
		case character == bracketOpen:
			closing := closingBracketIndex(runes, index)
			if closing < 0 {
				builder.WriteString(`\[`)
				continue
			}
			builder.WriteString(translateBracket(runes[index+1 : closing]))
			index = closing
		case character == ' ' && leadingBlank:
			builder.WriteString(literalSpace)
		case strings.ContainsRune(regexMetaToEscape, character):
			builder.WriteRune(escapeCharacter)
			builder.WriteRune(character)
		default:
			builder.WriteRune(character)
		}
	}
	return builder.String()
}

// literalCharacter renders an escaped glob character so that it survives
// go-gitignore's own rewriting as a literal.
func literalCharacter(character rune) string {
	switch {
	case character == '?':
		return literalQuestion
	case character == ' ':
		return literalSpace
	case character == '.' || character == '/':
		return string(character)
	case character > unicode.MaxASCII || unicode.IsLetter(character) || unicode.IsDigit(character):
		return string(character)
	case unicode.IsPunct(character) || unicode.IsSymbol(character):
		return string(escapeCharacter) + string(character)
	default:
		return string(character)
	}
}

// closingBracketIndex finds the "]" ending the bracket expression opened at
// openIndex, or -1 when the expression is unterminated. A "]" directly after
// the opening bracket (or its negation mark) is a member, not the end.
func closingBracketIndex(runes []rune, openIndex int) int {
	index := openIndex + 1
	if index < len(runes) && (runes[index] == bracketNegationBang || runes[index] == '^') {
		index++
	}
	if index < len(runes) && runes[index] == bracketClose {
		index++
	}
	for ; index < len(runes); index++ {
		switch runes[index] {
		case escapeCharacter:
			index++
		case bracketClose:
			return index
		}
	}
	return -1
}

func translateBracket(members []rune) string {
	var builder strings.Builder
	builder.WriteRune(bracketOpen)
	index := 0
	if len(members) > 0 && (members[0] == bracketNegationBang || members[0] == '^') {
		builder.WriteRune('^')
		index++
	}
	for ; index < len(members); index++ {
		member := members[index]
		switch {
		case member == escapeCharacter && index+1 < len(members):
			index++
			if strings.ContainsRune(bracketMetaToEscape, members[index]) {
				builder.WriteRune(escapeCharacter)
			}
			builder.WriteRune(members[index])
		case strings.ContainsRune(bracketMetaToEscape, member) && !(member == '^' || member == '-'):
			builder.WriteRune(escapeCharacter)
			builder.WriteRune(member)
		default:
			builder.WriteRune(member)
		}
	}
	builder.WriteRune(bracketClose)
	return builder.String()
}
