package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"rollout_tracker/internal/models"
)

// RouteService owns route and route-item state transitions, membership and
// the fleet-level statistics.
type RouteService struct {
	db *gorm.DB
}

func NewRouteService(db *gorm.DB) *RouteService {
	return &RouteService{db: db}
}

// CreateRouteInput carries the admin "create route" action.
type CreateRouteInput struct {
	Name         string     `json:"name"`
	SupplierID   uint       `json:"supplier_id"`
	Status       string     `json:"status"`
	Observations string     `json:"observations"`
	PlannedDate  *time.Time `json:"planned_date"`
	CreatedBy    uint       `json:"created_by"`
}

// RouteStats are the fleet-level aggregates shown on the rollout dashboard.
type RouteStats struct {
	RotasFinalizadas    int64 `json:"rotas_finalizadas"`
	RotasAtivas         int64 `json:"rotas_ativas"`
	LojasFinalizadas    int64 `json:"lojas_finalizadas"`
	LojasNaoFinalizadas int64 `json:"lojas_nao_finalizadas"`
}

// VisitStore is one store of a resolved route, in visit order, with the
// derived display status for dashboards.
type VisitStore struct {
	ItemID        uint         `json:"item_id"`
	OrdemVisita   int          `json:"ordem_visita"`
	Status        string       `json:"status"`
	DisplayStatus string       `json:"display_status"`
	Store         models.Store `json:"store"`
}

// ActorRoute is one active route with its member stores attached.
type ActorRoute struct {
	Route  models.Route `json:"route"`
	Stores []VisitStore `json:"stores"`
}

func validRouteStatus(status string) bool {
	switch status {
	case models.RouteAtiva, models.RouteInativa, models.RouteConcluida, models.RouteFinalizada:
		return true
	}
	return false
}

// canTransition encodes the route status machine: ativa↔inativa toggles,
// ativa/inativa may be closed to concluida, ativa may be finished, and
// nothing leaves finalizada or concluida.
func canTransition(from, to string) bool {
	if from == to {
		return true
	}
	switch from {
	case models.RouteAtiva:
		return to == models.RouteInativa || to == models.RouteConcluida || to == models.RouteFinalizada
	case models.RouteInativa:
		return to == models.RouteAtiva || to == models.RouteConcluida
	}
	return false
}

// CreateRoute registers a new route for a supplier. Stores and employees
// are attached afterwards via the replace-all setters.
func (s *RouteService) CreateRoute(input CreateRouteInput) (*models.Route, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrRouteNameRequired
	}
	status := input.Status
	if status == "" {
		status = models.RouteAtiva
	}
	if !validRouteStatus(status) {
		return nil, ErrInvalidStatus
	}

	var supplier models.Supplier
	if err := s.db.First(&supplier, input.SupplierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}

	route := models.Route{
		Name:         input.Name,
		SupplierID:   supplier.ID,
		Status:       status,
		Observations: input.Observations,
		PlannedDate:  input.PlannedDate,
		CreatedBy:    input.CreatedBy,
	}
	if err := s.db.Create(&route).Error; err != nil {
		return nil, err
	}
	return &route, nil
}

// UpdateRouteInput is a partial metadata update; nil fields are untouched.
type UpdateRouteInput struct {
	Name         *string    `json:"name"`
	Status       *string    `json:"status"`
	Observations *string    `json:"observations"`
	PlannedDate  *time.Time `json:"planned_date"`
}

// UpdateRoute mutates route metadata, honoring the forward-only status
// machine.
func (s *RouteService) UpdateRoute(routeID uint, input UpdateRouteInput) (*models.Route, error) {
	route, err := s.loadRoute(routeID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrRouteNameRequired
		}
		route.Name = *input.Name
	}
	if input.Status != nil {
		if !validRouteStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		if !canTransition(route.Status, *input.Status) {
			return nil, ErrInvalidTransition
		}
		route.Status = *input.Status
	}
	if input.Observations != nil {
		route.Observations = *input.Observations
	}
	if input.PlannedDate != nil {
		route.PlannedDate = input.PlannedDate
	}
	if err := s.db.Save(route).Error; err != nil {
		return nil, err
	}
	return route, nil
}

// SetRouteStores replaces the full store list of a route. Editing is always
// expressed as the complete desired list so visit order stays consistent:
// every existing item is deleted, then one item is inserted per store code
// with ordem_visita = index+1.
func (s *RouteService) SetRouteStores(routeID uint, storeCodes []string) error {
	route, err := s.loadRoute(routeID)
	if err != nil {
		return err
	}
	if route.Terminal() {
		return ErrRouteTerminal
	}

	// Referential check before any write.
	for _, code := range storeCodes {
		var store models.Store
		if err := s.db.Where("code = ?", code).First(&store).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStoreNotFound
			}
			return err
		}
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := tx.Unscoped().Where("route_id = ?", route.ID).Delete(&models.RouteItem{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	for i, code := range storeCodes {
		item := models.RouteItem{
			RouteID:     route.ID,
			StoreCode:   code,
			OrdemVisita: i + 1,
			Status:      models.ItemPendente,
		}
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}

// SetRouteEmployees replaces the employee assignment of a route. Every
// employee must belong to the route's supplier; duplicate ids are rejected.
func (s *RouteService) SetRouteEmployees(routeID uint, employeeIDs []uint) error {
	route, err := s.loadRoute(routeID)
	if err != nil {
		return err
	}
	if route.Terminal() {
		return ErrRouteTerminal
	}

	seen := make(map[uint]bool, len(employeeIDs))
	employees := make([]models.Employee, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		if seen[id] {
			return ErrDuplicateEmployee
		}
		seen[id] = true
		var emp models.Employee
		if err := s.db.First(&emp, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmployeeNotFound
			}
			return err
		}
		if emp.SupplierID != route.SupplierID {
			return ErrCrossSupplier
		}
		employees = append(employees, emp)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := tx.Exec("DELETE FROM route_employees WHERE route_id = ?", route.ID).Error; err != nil {
		tx.Rollback()
		return err
	}
	if len(employees) > 0 {
		if err := tx.Model(route).Association("Employees").Append(&employees); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}

// FinishRoute closes the route one-way. Item statuses are deliberately left
// as they are: a finished route with pendente items means work stopped.
func (s *RouteService) FinishRoute(routeID uint) error {
	route, err := s.loadRoute(routeID)
	if err != nil {
		return err
	}
	if route.Status == models.RouteFinalizada {
		return nil
	}
	if route.Status != models.RouteAtiva {
		return ErrInvalidTransition
	}
	now := time.Now()
	return s.db.Model(route).Updates(map[string]interface{}{
		"status":         models.RouteFinalizada,
		"execution_date": &now,
	}).Error
}

// DeleteRoute removes the route with its items and employee associations.
// Installations and tickets persist independently, keyed by store code.
func (s *RouteService) DeleteRoute(routeID uint) error {
	route, err := s.loadRoute(routeID)
	if err != nil {
		return err
	}
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := tx.Unscoped().Where("route_id = ?", route.ID).Delete(&models.RouteItem{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Exec("DELETE FROM route_employees WHERE route_id = ?", route.ID).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(route).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// UpdateItemStatus advances one route item. Progress is always explicit and
// forward-only; installation state never moves the stored status.
func (s *RouteService) UpdateItemStatus(itemID uint, status string) (*models.RouteItem, error) {
	switch status {
	case models.ItemPendente, models.ItemEmProgresso, models.ItemConcluido:
	default:
		return nil, ErrInvalidStatus
	}

	var item models.RouteItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	rank := map[string]int{models.ItemPendente: 0, models.ItemEmProgresso: 1, models.ItemConcluido: 2}
	if rank[status] < rank[item.Status] {
		return nil, ErrInvalidTransition
	}
	item.Status = status
	if status == models.ItemConcluido && item.ExecutionDate == nil {
		now := time.Now()
		item.ExecutionDate = &now
	}
	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Stats aggregates over the distinct store codes referenced by route items.
// A store on several routes counts once; it is finalizada when its
// installation carries the flag.
func (s *RouteService) Stats() (*RouteStats, error) {
	stats := &RouteStats{}
	if err := s.db.Model(&models.Route{}).Where("status = ?", models.RouteFinalizada).Count(&stats.RotasFinalizadas).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Route{}).Where("status = ?", models.RouteAtiva).Count(&stats.RotasAtivas).Error; err != nil {
		return nil, err
	}

	var codes []string
	if err := s.db.Model(&models.RouteItem{}).Distinct("store_code").Pluck("store_code", &codes).Error; err != nil {
		return nil, err
	}
	var finalized []string
	if err := s.db.Model(&models.Installation{}).Where("finalizada = ?", true).Pluck("store_code", &finalized).Error; err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(finalized))
	for _, c := range finalized {
		done[c] = true
	}
	for _, c := range codes {
		if done[c] {
			stats.LojasFinalizadas++
		} else {
			stats.LojasNaoFinalizadas++
		}
	}
	return stats, nil
}

// ResolveRoutesForActor returns the active routes visible to a supplier or
// one of its employees, with store detail joined in visit order. Employees
// resolve through their owning supplier first.
func (s *RouteService) ResolveRoutesForActor(actorID uint, actorType string) ([]ActorRoute, error) {
	var supplierID uint
	switch actorType {
	case "supplier", "fornecedor":
		var supplier models.Supplier
		if err := s.db.First(&supplier, actorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSupplierNotFound
			}
			return nil, err
		}
		supplierID = supplier.ID
	case "employee", "funcionario":
		var emp models.Employee
		if err := s.db.First(&emp, actorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEmployeeNotFound
			}
			return nil, err
		}
		supplierID = emp.SupplierID
	default:
		return nil, ErrInvalidStatus
	}

	var routes []models.Route
	if err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("ordem_visita") }).
		Where("supplier_id = ? AND status = ?", supplierID, models.RouteAtiva).
		Find(&routes).Error; err != nil {
		return nil, err
	}

	out := make([]ActorRoute, 0, len(routes))
	for _, route := range routes {
		ar := ActorRoute{Route: route}
		for _, item := range route.Items {
			visit := VisitStore{
				ItemID:      item.ID,
				OrdemVisita: item.OrdemVisita,
				Status:      item.Status,
			}
			display, err := s.DisplayStatus(item.StoreCode)
			if err != nil {
				return nil, err
			}
			visit.DisplayStatus = display
			var store models.Store
			if err := s.db.Where("code = ?", item.StoreCode).First(&store).Error; err == nil {
				visit.Store = store
			}
			ar.Stores = append(ar.Stores, visit)
		}
		out = append(out, ar)
	}
	return out, nil
}

// DisplayStatus derives the presentation-only badge for a store: an open
// ticket beats everything, then a finalized installation, then pendente.
// The stored route-item status is a separate, workflow-owned value.
func (s *RouteService) DisplayStatus(storeCode string) (string, error) {
	var openTickets int64
	if err := s.db.Model(&models.Ticket{}).
		Where("store_code = ? AND status = ?", storeCode, models.TicketAberto).
		Count(&openTickets).Error; err != nil {
		return "", err
	}
	if openTickets > 0 {
		return models.DisplayChamadoAberto, nil
	}

	var inst models.Installation
	err := s.db.Where("store_code = ?", storeCode).First(&inst).Error
	if err == nil && inst.Finalizada {
		return models.DisplayFinalizada, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	return models.DisplayPendente, nil
}

func (s *RouteService) loadRoute(routeID uint) (*models.Route, error) {
	var route models.Route
	if err := s.db.First(&route, routeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	return &route, nil
}
