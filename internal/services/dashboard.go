package services

import (
	"errors"
	"fmt"

	"github.com/ledgerline/firmdesk/backend/internal/models"
	"github.com/ledgerline/firmdesk/backend/pkg/response"
	"gorm.io/gorm"
)

// CatalogEntry is one togglable dashboard component available to a role.
type CatalogEntry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// componentCatalog is the static role-keyed registry of selectable
// dashboard components. Defined once; never persisted.
var componentCatalog = map[string][]CatalogEntry{
	models.RoleAdmin: {
		{Key: "dashboard", Label: "Dashboard"},
		{Key: "forms", Label: "Forms"},
		{Key: "categories", Label: "Categories"},
		{Key: "users", Label: "Users"},
		{Key: "audit", Label: "Audit Log"},
		{Key: "payments", Label: "Payments"},
		{Key: "chat", Label: "Assistant"},
	},
	models.RoleManager: {
		{Key: "dashboard", Label: "Dashboard"},
		{Key: "forms", Label: "Forms"},
		{Key: "submissions", Label: "Submissions"},
		{Key: "payments", Label: "Payments"},
		{Key: "chat", Label: "Assistant"},
	},
	models.RoleClient: {
		{Key: "dashboard", Label: "Dashboard"},
		{Key: "forms", Label: "My Forms"},
		{Key: "payments", Label: "Payments"},
		{Key: "chat", Label: "Assistant"},
	},
	models.RoleEmployee: {
		{Key: "dashboard", Label: "Dashboard"},
		{Key: "forms", Label: "Forms"},
		{Key: "submissions", Label: "Submissions"},
	},
	models.RoleOperator: {
		{Key: "dashboard", Label: "Dashboard"},
		{Key: "forms", Label: "Forms"},
	},
	models.RoleHelper: {
		{Key: "dashboard", Label: "Dashboard"},
	},
	models.RoleMasterGST: {
		{Key: "dashboard", Label: "Dashboard"},
		{Key: "forms", Label: "GST Forms"},
		{Key: "submissions", Label: "Submissions"},
	},
	models.RoleMasterIncomeTax: {
		{Key: "dashboard", Label: "Dashboard"},
		{Key: "forms", Label: "Income Tax Forms"},
		{Key: "submissions", Label: "Submissions"},
	},
	models.RoleMasterAudit: {
		{Key: "dashboard", Label: "Dashboard"},
		{Key: "forms", Label: "Audit Forms"},
		{Key: "submissions", Label: "Submissions"},
	},
	models.RoleMasterAccounts: {
		{Key: "dashboard", Label: "Dashboard"},
		{Key: "forms", Label: "Accounts Forms"},
		{Key: "submissions", Label: "Submissions"},
	},
	models.RoleMasterPayroll: {
		{Key: "dashboard", Label: "Dashboard"},
		{Key: "forms", Label: "Payroll Forms"},
		{Key: "submissions", Label: "Submissions"},
	},
}

// GetCatalog returns the component catalog for a role. Unknown roles get
// an empty list.
func GetCatalog(role string) []CatalogEntry {
	entries, ok := componentCatalog[role]
	if !ok {
		return []CatalogEntry{}
	}
	out := make([]CatalogEntry, len(entries))
	copy(out, entries)
	return out
}

// CatalogHasKey reports whether the role's catalog contains the key.
func CatalogHasKey(role, key string) bool {
	for _, e := range componentCatalog[role] {
		if e.Key == key {
			return true
		}
	}
	return false
}

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// defaultConfig synthesizes the state of a user with no stored config:
// every catalog component enabled, tabs in catalog order. Nothing is
// persisted until the first admin edit.
func defaultConfig(userID uint, role string) *models.DashboardConfig {
	catalog := GetCatalog(role)
	enabled := make(models.ComponentKeyList, 0, len(catalog))
	tabs := make(models.TabList, 0, len(catalog))
	for _, e := range catalog {
		enabled = append(enabled, e.Key)
		tabs = append(tabs, models.DashboardTab{Key: e.Key, Label: e.Label})
	}
	return &models.DashboardConfig{
		UserID:            userID,
		EnabledComponents: enabled,
		Tabs:              tabs,
	}
}

func (s *DashboardService) findUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// GetConfig returns the user's dashboard config, synthesizing defaults
// when none exists yet. Keys outside the role's catalog (left behind by a
// role change) are filtered out of the returned view.
func (s *DashboardService) GetConfig(userID uint) (*models.DashboardConfig, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}

	var cfg models.DashboardConfig
	if err := s.db.Where("user_id = ?", userID).First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return defaultConfig(userID, user.Role), nil
		}
		return nil, err
	}

	cfg.EnabledComponents = filterByCatalog(user.Role, cfg.EnabledComponents)
	cfg.Tabs = filterTabsByCatalog(user.Role, cfg.Tabs)
	return &cfg, nil
}

func filterByCatalog(role string, keys models.ComponentKeyList) models.ComponentKeyList {
	out := make(models.ComponentKeyList, 0, len(keys))
	for _, k := range keys {
		if CatalogHasKey(role, k) {
			out = append(out, k)
		}
	}
	return out
}

func filterTabsByCatalog(role string, tabs models.TabList) models.TabList {
	out := make(models.TabList, 0, len(tabs))
	for _, t := range tabs {
		if CatalogHasKey(role, t.Key) {
			out = append(out, t)
		}
	}
	return out
}

type SetComponentRequest struct {
	ComponentKey string `json:"component_key" binding:"required"`
	Enabled      bool   `json:"enabled"`
}

// SetComponentEnabled toggles a catalog component for the target user.
// A key outside the target user's role catalog fails with InvalidComponent
// and alters nothing. The config document is created lazily on first edit.
func (s *DashboardService) SetComponentEnabled(userID uint, req *SetComponentRequest) (*models.DashboardConfig, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}

	if !CatalogHasKey(user.Role, req.ComponentKey) {
		return nil, response.NewInvalidComponent(
			fmt.Sprintf("component %q not in catalog for role %q", req.ComponentKey, user.Role))
	}

	cfg, err := s.loadOrInitConfig(userID, user.Role)
	if err != nil {
		return nil, err
	}

	if req.Enabled {
		if !cfg.EnabledComponents.Contains(req.ComponentKey) {
			cfg.EnabledComponents = append(cfg.EnabledComponents, req.ComponentKey)
		}
	} else {
		kept := make(models.ComponentKeyList, 0, len(cfg.EnabledComponents))
		for _, k := range cfg.EnabledComponents {
			if k != req.ComponentKey {
				kept = append(kept, k)
			}
		}
		cfg.EnabledComponents = kept
	}

	if err := s.db.Save(cfg).Error; err != nil {
		return nil, err
	}

	return cfg, nil
}

type ReorderTabsRequest struct {
	Tabs []models.DashboardTab `json:"tabs" binding:"required"`
}

// ReorderTabs replaces the tab list wholesale with the caller-supplied
// order. The new order must be a permutation of the current tabs.
func (s *DashboardService) ReorderTabs(userID uint, req *ReorderTabsRequest) (*models.DashboardConfig, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}

	cfg, err := s.loadOrInitConfig(userID, user.Role)
	if err != nil {
		return nil, err
	}

	if !isPermutation(cfg.Tabs, req.Tabs) {
		return nil, response.NewValidation("tab order must be a permutation of the current tabs", nil)
	}

	cfg.Tabs = models.TabList(req.Tabs)
	if err := s.db.Save(cfg).Error; err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadOrInitConfig fetches the stored config or materializes the default
// one on first edit (Uninitialized -> Initialized).
func (s *DashboardService) loadOrInitConfig(userID uint, role string) (*models.DashboardConfig, error) {
	var cfg models.DashboardConfig
	err := s.db.Where("user_id = ?", userID).First(&cfg).Error
	if err == nil {
		return &cfg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := defaultConfig(userID, role)
	if err := s.db.Create(fresh).Error; err != nil {
		return nil, err
	}
	return fresh, nil
}

// isPermutation reports whether next is a reordering of current by key.
func isPermutation(current models.TabList, next []models.DashboardTab) bool {
	if len(current) != len(next) {
		return false
	}
	counts := make(map[string]int, len(current))
	for _, t := range current {
		counts[t.Key]++
	}
	for _, t := range next {
		counts[t.Key]--
		if counts[t.Key] < 0 {
			return false
		}
	}
	return true
}
