package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"store_manager/internal/apperrors"
	"store_manager/internal/logger"
	"store_manager/internal/models"
	"store_manager/internal/repository"
)

// OrderLineInput is one line of a draft order as submitted by an officer.
type OrderLineInput struct {
	ProductID          uint    `json:"product_id" binding:"required"`
	Quantity           int     `json:"quantity" binding:"required"`
	BonusQuantity      int     `json:"bonus_quantity"`
	DiscountPercentage float64 `json:"discount_percentage"`
}

type OrderService interface {
	// CreateDraftOrder is idempotent per (store, creator): it updates the
	// existing open draft when one exists, otherwise creates it.
	CreateDraftOrder(storeID uint, actor models.Actor, line OrderLineInput) (*models.Order, error)
	SubmitOrder(orderID uint, actor models.Actor) (*models.Order, error)
	ApproveOrder(orderID uint, actor models.Actor, note string) (*models.Order, error)
	RejectOrder(orderID uint, actor models.Actor, reason string) (*models.Order, error)
	FulfillOrder(orderID uint, actor models.Actor, note string) (*models.Order, error)
	DeleteOrder(orderID uint, actor models.Actor) error
	GetOrderByID(id uint) (*models.Order, error)
	GetOrdersByStore(storeID uint) ([]models.Order, error)
	GetOrdersByStatus(status models.OrderStatus) ([]models.Order, error)
	GetAllOrders() ([]models.Order, error)
}

type orderService struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
	log       *logrus.Logger
}

func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository) OrderService {
	return &orderService{db: db, orderRepo: orderRepo, log: logger.Get()}
}

func validateLine(line OrderLineInput) error {
	if line.Quantity <= 0 {
		return &apperrors.ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	if line.BonusQuantity < 0 {
		return &apperrors.ValidationError{Field: "bonus_quantity", Reason: "must not be negative"}
	}
	if line.DiscountPercentage < 0 || line.DiscountPercentage > 100 {
		return &apperrors.ValidationError{Field: "discount_percentage", Reason: "must be between 0 and 100"}
	}
	return nil
}

func (s *orderService) CreateDraftOrder(storeID uint, actor models.Actor, line OrderLineInput) (*models.Order, error) {
	if err := validateLine(line); err != nil {
		return nil, err
	}

	var orderID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var store models.Store
		if err := tx.First(&store, storeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperrors.NotFoundError{Resource: "store", ID: storeID}
			}
			return err
		}

		var product models.Product
		if err := tx.First(&product, line.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperrors.NotFoundError{Resource: "product", ID: line.ProductID}
			}
			return err
		}

		// Drafts are editable carts: stock is checked here but reserved only at
		// submission.
		needed := line.Quantity + line.BonusQuantity
		if product.Stock < needed {
			return &apperrors.InsufficientStockError{
				ProductID: product.ID,
				Available: product.Stock,
				Needed:    needed,
			}
		}

		var draft models.Order
		err := tx.Preload("Items").
			Where("store_id = ? AND created_by = ? AND status = ?", storeID, actor.ID, models.OrderDraft).
			First(&draft).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			draft = models.Order{
				OrderNumber: uuid.NewString(),
				StoreID:     storeID,
				CreatedBy:   actor.ID,
				Status:      models.OrderDraft,
			}
			if err := tx.Create(&draft).Error; err != nil {
				return err
			}
			event := models.OrderStatusEvent{
				OrderID: draft.ID,
				Status:  models.OrderDraft,
				ActorID: actor.ID,
				Note:    "draft created",
			}
			if err := tx.Create(&event).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		}
		orderID = draft.ID

		// Upsert the line: a repeated product updates the existing line instead
		// of adding a second one.
		discount := decimal.NewFromFloat(line.DiscountPercentage)
		for i := range draft.Items {
			if draft.Items[i].ProductID == line.ProductID {
				return tx.Model(&draft.Items[i]).Updates(map[string]interface{}{
					"unit_price":          product.UnitPrice,
					"quantity":            line.Quantity,
					"bonus_quantity":      line.BonusQuantity,
					"discount_percentage": discount,
				}).Error
			}
		}

		item := models.OrderItem{
			OrderID:            draft.ID,
			ProductID:          line.ProductID,
			UnitPrice:          product.UnitPrice,
			Quantity:           line.Quantity,
			BonusQuantity:      line.BonusQuantity,
			DiscountPercentage: discount,
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.GetByID(orderID)
}

// SubmitOrder moves a draft to pending and reserves stock for every line in a
// single transaction. Either every line's stock is decremented and the status
// changes, or nothing happens.
func (s *orderService) SubmitOrder(orderID uint, actor models.Actor) (*models.Order, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperrors.NotFoundError{Resource: "order", ID: orderID}
			}
			return err
		}

		if order.CreatedBy != actor.ID {
			return &apperrors.UnauthorizedError{Reason: "only the order creator may submit it"}
		}
		if len(order.Items) == 0 {
			return &apperrors.ValidationError{Field: "items", Reason: "order has no line items"}
		}

		// Status-guarded conditional update: of two concurrent submissions
		// exactly one sees RowsAffected == 1, so stock is reserved once per
		// order.
		now := time.Now()
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, models.OrderDraft).
			Updates(map[string]interface{}{"status": models.OrderPending, "submitted_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return s.transitionConflict(tx, orderID, models.OrderPending)
		}

		for i := range order.Items {
			if err := reserveStock(tx, order.Items[i].ProductID, order.Items[i].UnitsNeeded()); err != nil {
				return err
			}
		}

		event := models.OrderStatusEvent{
			OrderID: orderID,
			Status:  models.OrderPending,
			ActorID: actor.ID,
			Note:    "submitted",
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"order_id": orderID, "actor_id": actor.ID}).Info("order submitted")
	return s.orderRepo.GetByID(orderID)
}

func (s *orderService) ApproveOrder(orderID uint, actor models.Actor, note string) (*models.Order, error) {
	if !actor.Is(models.RoleAdmin) {
		return nil, &apperrors.UnauthorizedError{Reason: "approving orders requires the admin role"}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureOrderExists(tx, orderID); err != nil {
			return err
		}

		now := time.Now()
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, models.OrderPending).
			Updates(map[string]interface{}{"status": models.OrderApproved, "approved_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return s.transitionConflict(tx, orderID, models.OrderApproved)
		}

		event := models.OrderStatusEvent{
			OrderID: orderID,
			Status:  models.OrderApproved,
			ActorID: actor.ID,
			Note:    note,
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"order_id": orderID, "actor_id": actor.ID}).Info("order approved")
	return s.orderRepo.GetByID(orderID)
}

// RejectOrder moves a pending or approved order to rejected and releases the
// stock it reserved at submission.
func (s *orderService) RejectOrder(orderID uint, actor models.Actor, reason string) (*models.Order, error) {
	if !actor.Is(models.RoleAdmin, models.RoleStockManager) {
		return nil, &apperrors.UnauthorizedError{Reason: "rejecting orders requires the admin or stock_manager role"}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperrors.NotFoundError{Resource: "order", ID: orderID}
			}
			return err
		}

		now := time.Now()
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status IN ?", orderID, []models.OrderStatus{models.OrderPending, models.OrderApproved}).
			Updates(map[string]interface{}{"status": models.OrderRejected, "rejected_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return s.transitionConflict(tx, orderID, models.OrderRejected)
		}

		// The guard above ensures this release happens at most once per order.
		for i := range order.Items {
			if err := releaseStock(tx, order.Items[i].ProductID, order.Items[i].UnitsNeeded()); err != nil {
				return err
			}
		}

		event := models.OrderStatusEvent{
			OrderID: orderID,
			Status:  models.OrderRejected,
			ActorID: actor.ID,
			Note:    reason,
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"order_id": orderID, "actor_id": actor.ID, "reason": reason}).Info("order rejected")
	return s.orderRepo.GetByID(orderID)
}

// FulfillOrder marks an approved order as delivered. From here on the order
// counts toward the store's owed balance.
func (s *orderService) FulfillOrder(orderID uint, actor models.Actor, note string) (*models.Order, error) {
	if !actor.Is(models.RoleStockManager) {
		return nil, &apperrors.UnauthorizedError{Reason: "fulfilling orders requires the stock_manager role"}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureOrderExists(tx, orderID); err != nil {
			return err
		}

		now := time.Now()
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, models.OrderApproved).
			Updates(map[string]interface{}{"status": models.OrderFulfilled, "fulfilled_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return s.transitionConflict(tx, orderID, models.OrderFulfilled)
		}

		event := models.OrderStatusEvent{
			OrderID: orderID,
			Status:  models.OrderFulfilled,
			ActorID: actor.ID,
			Note:    note,
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"order_id": orderID, "actor_id": actor.ID}).Info("order fulfilled")
	return s.orderRepo.GetByID(orderID)
}

// DeleteOrder removes an order. Drafts may be deleted by their creator and
// never touch stock; any other order may be deleted by an admin, which
// releases reserved stock unless a rejection already did.
func (s *orderService) DeleteOrder(orderID uint, actor models.Actor) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperrors.NotFoundError{Resource: "order", ID: orderID}
			}
			return err
		}

		if order.Status == models.OrderDraft {
			if order.CreatedBy != actor.ID && !actor.Is(models.RoleAdmin) {
				return &apperrors.UnauthorizedError{Reason: "only the order creator may delete a draft"}
			}
		} else if !actor.Is(models.RoleAdmin) {
			return &apperrors.UnauthorizedError{Reason: "deleting a submitted order requires the admin role"}
		}

		// Guard on the status read above so a racing transition cannot cause a
		// second release or a release of never-reserved stock.
		res := tx.Where("status = ?", order.Status).Delete(&models.Order{}, orderID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return s.transitionConflict(tx, orderID, order.Status)
		}

		if order.Status.HoldsStock() {
			for i := range order.Items {
				if err := releaseStock(tx, order.Items[i].ProductID, order.Items[i].UnitsNeeded()); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"order_id": orderID, "actor_id": actor.ID}).Info("order deleted")
	return nil
}

func (s *orderService) GetOrderByID(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "order", ID: id}
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrdersByStore(storeID uint) ([]models.Order, error) {
	return s.orderRepo.GetByStoreID(storeID)
}

func (s *orderService) GetOrdersByStatus(status models.OrderStatus) ([]models.Order, error) {
	if !status.IsValid() {
		return nil, &apperrors.ValidationError{Field: "status", Reason: "unknown status"}
	}
	return s.orderRepo.GetByStatus(status)
}

func (s *orderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// transitionConflict re-reads the order to report the status that made the
// guard fail.
func (s *orderService) transitionConflict(tx *gorm.DB, orderID uint, target models.OrderStatus) error {
	var order models.Order
	if err := tx.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperrors.NotFoundError{Resource: "order", ID: orderID}
		}
		return err
	}
	return &apperrors.InvalidTransitionError{
		OrderID: orderID,
		From:    order.Status.String(),
		To:      target.String(),
	}
}

func ensureOrderExists(tx *gorm.DB, orderID uint) error {
	var count int64
	if err := tx.Model(&models.Order{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &apperrors.NotFoundError{Resource: "order", ID: orderID}
	}
	return nil
}

// reserveStock decrements a product's stock with a non-negativity guard. A
// failed guard aborts the surrounding transaction, undoing the lines already
// reserved.
func reserveStock(tx *gorm.DB, productID uint, units int) error {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, units).
		UpdateColumn("stock", gorm.Expr("stock - ?", units))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperrors.NotFoundError{Resource: "product", ID: productID}
			}
			return err
		}
		return &apperrors.InsufficientStockError{
			ProductID: productID,
			Available: product.Stock,
			Needed:    units,
		}
	}
	return nil
}

func releaseStock(tx *gorm.DB, productID uint, units int) error {
	return tx.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", units)).Error
}
