// Package permission is the single place role/action decisions are made.
// The table is static: loaded once from the embedded YAML, never mutated at
// runtime. Every mutating service entry point consults Allowed before acting.
package permission

import (
	_ "embed"

	"github.com/propside/portal-go/internal/domain/user"
	"gopkg.in/yaml.v2"
	"k8s.io/klog/v2"
)

type Action string

const (
	TemplateCreate  Action = "template.create"
	TemplateUpdate  Action = "template.update"
	TemplateDelete  Action = "template.delete"
	TemplateView    Action = "template.view"
	DocumentIssue   Action = "document.issue"
	DocumentSign    Action = "document.sign"
	DocumentViewAll Action = "document.view_all"
	ContractIssue   Action = "contract.issue"
	ContractReview  Action = "contract.review"
	ContractViewAll Action = "contract.view_all"
)

//go:embed roles.yaml
var rolesYAML []byte

var table map[user.Role]map[Action]bool

func init() {
	var raw map[string][]string
	if err := yaml.Unmarshal(rolesYAML, &raw); err != nil {
		klog.Fatalf("Failed to parse embedded role table: %v", err)
	}

	table = make(map[user.Role]map[Action]bool, len(raw))
	for role, actions := range raw {
		set := make(map[Action]bool, len(actions))
		for _, a := range actions {
			set[Action(a)] = true
		}
		table[user.Role(role)] = set
	}
}

// Allowed reports whether role may perform action. Unknown roles and unknown
// actions are denied.
func Allowed(role user.Role, action Action) bool {
	return table[role][action]
}
