package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/user"
)

type (
	// ownership admits the requester when their role alone does not.
	ownership func(ctx echo.Context, claims Claims) bool

	accessRule struct {
		roles []string
		owner ownership
	}
)

// ownsPathID admits the requester when the named path param is their own user ID.
func ownsPathID(param string) ownership {
	return func(ctx echo.Context, claims Claims) bool {
		return ctx.Param(param) == claims.Subject
	}
}

// accessPolicy maps "resource:action" to the roles allowed to perform it.
// A nil role list admits any authenticated user. Rules the table cannot
// express from the route alone (eg. a Task assignee moving their own task
// along the board) are enforced by the handlers after loading the row.
var accessPolicy = map[string]accessRule{
	"user:create": {roles: []string{user.RoleAdmin}},
	"user:list":   {roles: []string{user.RoleAdmin}},
	"user:read":   {roles: []string{user.RoleAdmin}, owner: ownsPathID("id")},
	"user:update": {roles: []string{user.RoleAdmin}, owner: ownsPathID("id")},
	"user:delete": {roles: []string{user.RoleAdmin}},

	"course:list":   {},
	"course:read":   {},
	"course:create": {roles: []string{user.RoleAdmin, user.RoleInstructor}},
	"course:update": {roles: []string{user.RoleAdmin, user.RoleInstructor}},
	"course:delete": {roles: []string{user.RoleAdmin}},

	"course-content:list":   {},
	"course-content:read":   {},
	"course-content:create": {roles: []string{user.RoleAdmin, user.RoleInstructor}},
	"course-content:update": {roles: []string{user.RoleAdmin, user.RoleInstructor}},
	"course-content:delete": {roles: []string{user.RoleAdmin, user.RoleInstructor}},

	"enrollment:list":            {roles: []string{user.RoleAdmin, user.RoleInstructor, user.RoleStudent}},
	"enrollment:list-by-student": {roles: []string{user.RoleAdmin, user.RoleInstructor}, owner: ownsPathID("id")},
	"enrollment:list-by-course":  {roles: []string{user.RoleAdmin, user.RoleInstructor}},
	"enrollment:read":            {},
	"enrollment:create":          {roles: []string{user.RoleAdmin}},
	"enrollment:update":          {roles: []string{user.RoleAdmin}},
	"enrollment:delete":          {roles: []string{user.RoleAdmin}},

	"quiz:list":   {},
	"quiz:read":   {},
	"quiz:create": {roles: []string{user.RoleAdmin, user.RoleInstructor}},
	"quiz:update": {roles: []string{user.RoleAdmin, user.RoleInstructor}},
	"quiz:delete": {roles: []string{user.RoleAdmin, user.RoleInstructor}},

	"quiz-question:list":   {},
	"quiz-question:read":   {},
	"quiz-question:create": {roles: []string{user.RoleAdmin, user.RoleInstructor}},
	"quiz-question:update": {roles: []string{user.RoleAdmin, user.RoleInstructor}},
	"quiz-question:delete": {roles: []string{user.RoleAdmin, user.RoleInstructor}},

	"quiz-result:create":          {},
	"quiz-result:read":            {},
	"quiz-result:list":            {roles: []string{user.RoleAdmin, user.RoleInstructor}},
	"quiz-result:list-by-quiz":    {roles: []string{user.RoleAdmin, user.RoleInstructor}},
	"quiz-result:list-by-student": {roles: []string{user.RoleAdmin, user.RoleInstructor}, owner: ownsPathID("id")},

	"comment:create":          {},
	"comment:read":            {},
	"comment:list":            {roles: []string{user.RoleAdmin, user.RoleInstructor}},
	"comment:list-by-content": {},
	"comment:delete":          {roles: []string{user.RoleAdmin}},

	"project:list":   {roles: []string{user.RoleAdmin, user.RoleProjectManager, user.RoleEmployee}},
	"project:read":   {},
	"project:create": {roles: []string{user.RoleAdmin, user.RoleProjectManager}},
	"project:update": {roles: []string{user.RoleAdmin, user.RoleProjectManager}},
	"project:delete": {roles: []string{user.RoleAdmin, user.RoleProjectManager}},

	"client:list":   {},
	"client:read":   {},
	"client:create": {roles: []string{user.RoleAdmin, user.RoleProjectManager}},
	"client:update": {roles: []string{user.RoleAdmin, user.RoleProjectManager}},
	"client:delete": {roles: []string{user.RoleAdmin, user.RoleProjectManager}},

	"milestone:list":   {},
	"milestone:read":   {},
	"milestone:create": {roles: []string{user.RoleAdmin, user.RoleProjectManager}},
	"milestone:update": {roles: []string{user.RoleAdmin, user.RoleProjectManager}},
	"milestone:delete": {roles: []string{user.RoleAdmin, user.RoleProjectManager}},

	"task:list":             {},
	"task:read":             {},
	"task:list-by-assignee": {roles: []string{user.RoleAdmin, user.RoleProjectManager}, owner: ownsPathID("id")},
	"task:create":           {roles: []string{user.RoleAdmin, user.RoleProjectManager}},
	"task:update":           {roles: []string{user.RoleAdmin, user.RoleProjectManager, user.RoleEmployee}},
	"task:delete":           {roles: []string{user.RoleAdmin, user.RoleProjectManager}},

	"expense:list":   {roles: []string{user.RoleAdmin, user.RoleFinance}},
	"expense:read":   {roles: []string{user.RoleAdmin, user.RoleFinance}},
	"expense:create": {roles: []string{user.RoleAdmin, user.RoleFinance}},
	"expense:update": {roles: []string{user.RoleAdmin, user.RoleFinance}},
	"expense:delete": {roles: []string{user.RoleAdmin, user.RoleFinance}},

	"project-payment:list":            {roles: []string{user.RoleAdmin, user.RoleFinance}},
	"project-payment:list-by-project": {roles: []string{user.RoleAdmin, user.RoleFinance, user.RoleProjectManager}},
	"project-payment:read":            {roles: []string{user.RoleAdmin, user.RoleFinance, user.RoleProjectManager}},
	"project-payment:create":          {roles: []string{user.RoleAdmin, user.RoleFinance}},
	"project-payment:update":          {roles: []string{user.RoleAdmin, user.RoleFinance}},
	"project-payment:delete":          {roles: []string{user.RoleAdmin, user.RoleFinance}},
}

// authorize gates a route on the accessPolicy entry for (resource, action).
func authorize(resource, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}

			rule, ok := accessPolicy[resource+":"+action]
			if !ok {
				return errHttpForbidden
			}
			if rule.roles == nil {
				return next(ctx)
			}
			for _, role := range rule.roles {
				if claims.Role == role {
					return next(ctx)
				}
			}
			if rule.owner != nil && rule.owner(ctx, claims) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}
