package authz

import (
	"fmt"

	"github.com/peptide-store/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// promotionManagementPolicies 促销管理接口，按配置授予普通用户或仅管理员
var promotionManagementPolicies = []Policy{
	{Object: "/promotions", Action: "GET"},
	{Object: "/promotions", Action: "POST"},
	{Object: "/promotions", Action: "PATCH"},
}

// BuiltinRoleSeeds 系统预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleUser,
			Policies: []Policy{
				{Object: "/cart", Action: "*"},
				{Object: "/orders", Action: "GET"},
				{Object: "/orders", Action: "POST"},
				{Object: "/orders/quote", Action: "POST"},
				{Object: "/orders/:id", Action: "GET"},
				{Object: "/promotions/validate", Action: "POST"},
				{Object: "/cart", Action: constants.AuthzActionView},
				{Object: "/checkout", Action: constants.AuthzActionView},
				{Object: "/orders", Action: constants.AuthzActionView},
			},
		},
		{
			Role:     constants.RoleAdministrator,
			Inherits: []string{constants.RoleUser},
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
				{Object: "/admin/panel", Action: constants.AuthzActionView},
				{Object: "/admin/orders", Action: constants.AuthzActionView},
				{Object: "/admin/promotions", Action: constants.AuthzActionView},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
// promotionAdminOnly 为 true 时促销管理接口只授予管理员，否则普通用户也可访问
func (s *Service) BootstrapBuiltinRoles(promotionAdminOnly bool) error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, _, err := s.ensureRole(seed.Role)
		if err != nil {
			return err
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}

	grantee, revokee := constants.RoleUser, constants.RoleAdministrator
	if promotionAdminOnly {
		grantee, revokee = constants.RoleAdministrator, constants.RoleUser
	}
	for _, policy := range promotionManagementPolicies {
		if err := s.RevokeRolePolicy(revokee, policy.Object, policy.Action); err != nil {
			return err
		}
		if err := s.GrantRolePolicy(grantee, policy.Object, policy.Action); err != nil {
			return err
		}
	}
	return nil
}
