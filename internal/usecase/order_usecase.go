package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type OrderLineInput struct {
	MerchandiseID int64 `json:"merchandise_id"`
	Quantity      int64 `json:"quantity"`
}

type PlaceOrderInput struct {
	Items []OrderLineInput
	// ゲスト注文のみ使用。ログイン済みならuser_idが優先され無視される
	Email string
}

type OrderItemOutput struct {
	MerchandiseID int64 `json:"merchandise_id"`
	Quantity      int64 `json:"quantity"`
	UnitPrice     int64 `json:"unit_price"`
}

type OrderOutput struct {
	ID             int64             `json:"id"`
	UserID         *int64            `json:"user_id"`
	GuestEmail     string            `json:"guest_email,omitempty"`
	Status         string            `json:"status"`
	Amount         int64             `json:"amount"`
	HiddenFromUser bool              `json:"hidden_from_user"`
	CreatedAt      time.Time         `json:"created_at"`
	Items          []OrderItemOutput `json:"items"`
}

type OrderListOutput struct {
	Orders []OrderOutput `json:"orders"`
	Total  int64         `json:"total"`
	Page   int           `json:"page"`
}

// PlaceOrder は在庫を引き当てて注文を作る。
// 在庫減算・注文・明細は1トランザクション。1行でも失敗すれば全部戻る。
// userIDがnilならゲスト注文（emailが必須）。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID *int64, in PlaceOrderInput) (OrderOutput, error) {
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "order items are required")
	}
	for _, line := range in.Items {
		if line.MerchandiseID <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid merchandise_id")
		}
		if line.Quantity <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be a positive integer")
		}
	}

	email := strings.TrimSpace(in.Email)
	if userID == nil {
		if email == "" {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "email is required for guest orders")
		}
	} else {
		// user_idとemailは同時に持たない
		email = ""
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		var total int64 = 0

		for _, line := range in.Items {
			//商品取得
			m, err := r.Merchandise().FindByID(ctx, line.MerchandiseID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "merchandise not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//在庫減算（足りないなら false）。失敗でtxごと巻き戻す
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, line.MerchandiseID, line.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusConflict, "insufficient stock")
			}

			//注文時点の価格スナップショット
			orderItems = append(orderItems, model.OrderItem{
				MerchandiseID:     line.MerchandiseID,
				Quantity:          line.Quantity,
				UnitPriceSnapshot: m.Price,
			})

			total += m.Price * line.Quantity
		}

		// 注文作成
		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:     userID,
			GuestEmail: email,
			Status:     model.OrderStatusPending,
			Amount:     total,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created := model.Order{
			ID:         orderID,
			UserID:     userID,
			GuestEmail: email,
			Status:     model.OrderStatusPending,
			Amount:     total,
			CreatedAt:  now,
		}
		out = toOrderOutput(created, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// Cancel はpendingの注文だけ取り消し、在庫を明細どおり戻す。
// 在庫戻しとステータス変更は同じトランザクションでコミットする。
func (u *OrderUsecase) Cancel(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//所有チェック（ゲスト注文はオーナーがいないので常に403）
		if o.UserID == nil || *o.UserID != userID {
			return NewHTTPError(http.StatusForbidden, "you can only cancel your own orders")
		}

		//pending以外（cancelled含む）は取り消せない
		if o.Status != model.OrderStatusPending {
			return NewHTTPError(http.StatusBadRequest, "only pending orders can be cancelled")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//在庫戻し
		for _, it := range items {
			if err := r.Inventory().IncreaseStock(ctx, it.MerchandiseID, it.Quantity); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = model.OrderStatusCancelled
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// SetHidden は本人の一覧から注文を隠す/戻す。
// 同じ値を二度設定しても結果は変わらない（冪等）。管理者の一覧には影響しない。
func (u *OrderUsecase) SetHidden(ctx context.Context, userID int64, orderID int64, hidden bool) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if o.UserID == nil || *o.UserID != userID {
			return NewHTTPError(http.StatusForbidden, "you can only hide your own orders")
		}

		if err := r.Orders().SetHidden(ctx, orderID, hidden); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.HiddenFromUser = hidden
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, page int, limit int) (OrderListOutput, error) {
	if userID <= 0 {
		return OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var out OrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListByUserID(ctx, userID, page, limit)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}

		out = OrderListOutput{Orders: outs, Total: total, Page: page}
		return nil
	})

	if err != nil {
		return OrderListOutput{}, err
	}
	return out, nil
}

// GetOrderDetail は本人か管理者だけが見られる
func (u *OrderUsecase) GetOrderDetail(ctx context.Context, userID int64, role model.Role, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if role != model.RoleAdmin {
			if o.UserID == nil || *o.UserID != userID {
				return NewHTTPError(http.StatusForbidden, "you can only view your own orders")
			}
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			MerchandiseID: it.MerchandiseID,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPriceSnapshot,
		})
	}

	return OrderOutput{
		ID:             o.ID,
		UserID:         o.UserID,
		GuestEmail:     o.GuestEmail,
		Status:         string(o.Status),
		Amount:         o.Amount,
		HiddenFromUser: o.HiddenFromUser,
		CreatedAt:      o.CreatedAt,
		Items:          outItems,
	}
}
