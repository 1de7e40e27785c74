package ui

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zhubert/parley/internal/im"
)

// emoticons maps typed emoticons to the emoji they are shown as. Only whole
// space-separated words are replaced.
var emoticons = map[string]string{
	":)":  "🙂",
	":-)": "🙂",
	":(":  "🙁",
	":-(": "🙁",
	":D":  "😃",
	":-D": "😃",
	";)":  "😉",
	";-)": "😉",
	":P":  "😛",
	":-P": "😛",
	":p":  "😛",
	":o":  "😮",
	":O":  "😮",
	":'(": "😢",
	"<3":  "❤️",
	"B)":  "😎",
}

// replaceEmoticons swaps emoticon words in line for emoji
func replaceEmoticons(line string) string {
	words := strings.Split(line, " ")
	changed := false
	for i, w := range words {
		if e, ok := emoticons[w]; ok {
			words[i] = e
			changed = true
		}
	}
	if !changed {
		return line
	}
	return strings.Join(words, " ")
}

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return strings.TrimRight(buf.String(), "\n")
}

// wrapText wraps text to width cells
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// renderBody renders a message body: fenced code blocks are highlighted,
// other lines are wrapped and get emoticons replaced unless ignoreEmoticons.
func renderBody(body string, width int, ignoreEmoticons bool) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var result strings.Builder
	inCodeBlock := false
	codeBlockLang := ""
	var codeBlockContent strings.Builder

	flushCode := func() {
		highlighted := highlightCode(codeBlockContent.String(), codeBlockLang)
		result.WriteString(CodeBlockStyle.Render(highlighted))
		result.WriteString("\n")
	}

	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "```") {
			if !inCodeBlock {
				inCodeBlock = true
				codeBlockLang = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				codeBlockContent.Reset()
			} else {
				inCodeBlock = false
				flushCode()
				codeBlockLang = ""
			}
			continue
		}

		if inCodeBlock {
			if codeBlockContent.Len() > 0 {
				codeBlockContent.WriteString("\n")
			}
			codeBlockContent.WriteString(line)
			continue
		}

		if !ignoreEmoticons {
			line = replaceEmoticons(line)
		}
		result.WriteString(ChatMessageStyle.Render(wrapText(line, width)))
		result.WriteString("\n")
	}

	// An unterminated block still gets highlighted
	if inCodeBlock {
		flushCode()
	}

	return strings.TrimRight(result.String(), "\n")
}

// renderMessage renders a message with its time and sender line
func renderMessage(msg im.Message, width int, ignoreEmoticons bool) string {
	senderStyle := ChatPeerStyle
	if msg.Own {
		senderStyle = ChatOwnStyle
	}

	var sb strings.Builder
	if !msg.Time.IsZero() {
		sb.WriteString(ChatTimeStyle.Render(msg.Time.Format("15:04")))
		sb.WriteString(" ")
	}
	sb.WriteString(senderStyle.Render(msg.Sender + ":"))
	sb.WriteString("\n")
	sb.WriteString(renderBody(strings.TrimSpace(msg.Body), width, ignoreEmoticons))
	return sb.String()
}
