package handlers

import (
	"net/http"

	"benlabs/caliper/pkg/lint"
	"benlabs/caliper/pkg/server/respond"
)

// RuleInfo describes one rule in the catalog response.
type RuleInfo struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// RulesHandler serves the rule catalog.
type RulesHandler struct {
	registry *lint.Registry
}

// NewRulesHandler creates the handler.
func NewRulesHandler(registry *lint.Registry) *RulesHandler {
	return &RulesHandler{registry: registry}
}

func (h *RulesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.Error(w, r, http.StatusMethodNotAllowed,
			respond.ErrorTypeInvalidRequest, "use GET")
		return
	}

	rules := h.registry.Rules()
	infos := make([]RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, RuleInfo{
			Name:        rule.Name(),
			Category:    string(rule.Category()),
			Severity:    rule.DefaultSeverity().String(),
			Description: rule.Description(),
		})
	}
	respond.JSON(w, http.StatusOK, map[string]any{"rules": infos})
}
