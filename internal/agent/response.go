package agent

import "github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

// ResponseKind discriminates the gateway response union. The dispatcher
// switches on the kind instead of inspecting shape at runtime.
type ResponseKind int

const (
	// KindText is a plain text answer.
	KindText ResponseKind = iota
	// KindFlex is a structured rich-card payload.
	KindFlex
	// KindTextWithQuickReply is text that should carry the detailed
	// quick-reply row when sent.
	KindTextWithQuickReply
)

// Response is the tagged result of an agent call or tool execution.
type Response struct {
	Kind    ResponseKind
	Text    string
	AltText string
	Flex    messaging_api.FlexContainerInterface
}

// TextResponse builds a plain text response.
func TextResponse(text string) Response {
	return Response{Kind: KindText, Text: text}
}

// FlexResponse builds a rich-card response.
func FlexResponse(altText string, contents messaging_api.FlexContainerInterface) Response {
	return Response{Kind: KindFlex, AltText: altText, Flex: contents}
}
