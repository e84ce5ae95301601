package agent

import (
	"fmt"
	"strings"

	"github.com/vibpath/vibgate/internal/templates"
)

// ToolFunc executes one agent-requested function call.
type ToolFunc func(args map[string]interface{}) (Response, error)

// DefaultTools is the fixed name→function table the agent may invoke.
// Unknown names are logged and skipped by the gateway.
func DefaultTools() map[string]ToolFunc {
	return map[string]ToolFunc{
		"show_company_introduction": func(map[string]interface{}) (Response, error) {
			msg := templates.CompanyIntroduction()
			return FlexResponse(msg.AltText, msg.Contents), nil
		},
		"show_product_catalog": func(map[string]interface{}) (Response, error) {
			msg := templates.FrequencyServicesCarousel()
			return FlexResponse(msg.AltText, msg.Contents), nil
		},
		"show_service_menu": func(map[string]interface{}) (Response, error) {
			msg := templates.ServiceMenu()
			return FlexResponse(msg.AltText, msg.Contents), nil
		},
		"show_product_details": showProductDetails,
	}
}

// product aliases → explanation keys
var productAliases = map[string]string{
	"7_83hz":      "explain_7_83hz",
	"7.83hz":      "explain_7_83hz",
	"舒曼波":         "explain_7_83hz",
	"13freq":      "explain_13freq",
	"13頻":         "explain_13freq",
	"脈輪":          "explain_13freq",
	"40hz":        "explain_40hz",
	"gamma":       "explain_40hz",
	"γ波":          "explain_40hz",
	"double_freq": "explain_double_freq",
	"雙頻":          "explain_double_freq",
	"alpha":       "explain_double_freq",
	"theta":       "explain_double_freq",
}

func showProductDetails(args map[string]interface{}) (Response, error) {
	productType, _ := args["product_type"].(string)
	if productType == "" {
		return Response{}, fmt.Errorf("missing product_type argument")
	}

	if key, ok := productAliases[strings.ToLower(productType)]; ok {
		if explanation, found := templates.Explanation(key); found {
			return Response{Kind: KindTextWithQuickReply, Text: explanation}, nil
		}
	}
	return TextResponse("抱歉，找不到該產品的詳細資訊。請使用選單查看我們的產品。"), nil
}
