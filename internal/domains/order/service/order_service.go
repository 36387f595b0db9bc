package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	catalogModel "hotel-backend/internal/domains/catalog/model"
	catalogRepo "hotel-backend/internal/domains/catalog/repository"
	catalogService "hotel-backend/internal/domains/catalog/service"
	customer "hotel-backend/internal/domains/customer/model"
	customerRepo "hotel-backend/internal/domains/customer/repository"
	"hotel-backend/internal/domains/order/model"
	"hotel-backend/internal/domains/order/repository"
	promoModel "hotel-backend/internal/domains/promotion/model"
	promoRepo "hotel-backend/internal/domains/promotion/repository"
	promoService "hotel-backend/internal/domains/promotion/service"
	"hotel-backend/internal/shared"
	"hotel-backend/internal/shared/apperror"
	"hotel-backend/internal/shared/utils"
	"hotel-backend/pkg/clock"
	"hotel-backend/pkg/database"
	"hotel-backend/pkg/logger"
)

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Dependencies groups what the order service is built from.
type Dependencies struct {
	Orders     repository.OrderRepository
	Promotions promoRepo.PromotionRepository
	Customers  customerRepo.CustomerReader
	Catalog    catalogRepo.CatalogReader
	Pricer     *catalogService.PriceCalculator
	Evaluator  *promoService.EligibilityEvaluator
	Allocator  *promoService.DiscountAllocator
	Recorder   *promoService.UsageRecorder
	Tx         database.TxManager
	Queue      TaskEnqueuer
	AuditQueue string
	Clock      clock.Clock
	Location   *time.Location
}

type orderService struct {
	orders     repository.OrderRepository
	promotions promoRepo.PromotionRepository
	customers  customerRepo.CustomerReader
	catalog    catalogRepo.CatalogReader
	pricer     *catalogService.PriceCalculator
	evaluator  *promoService.EligibilityEvaluator
	allocator  *promoService.DiscountAllocator
	recorder   *promoService.UsageRecorder
	tx         database.TxManager
	queue      TaskEnqueuer
	auditQueue string
	clock      clock.Clock
	loc        *time.Location
}

func NewOrderService(deps Dependencies) OrderService {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	auditQueue := deps.AuditQueue
	if auditQueue == "" {
		auditQueue = shared.QueueAudit
	}
	return &orderService{
		orders:     deps.Orders,
		promotions: deps.Promotions,
		customers:  deps.Customers,
		catalog:    deps.Catalog,
		pricer:     deps.Pricer,
		evaluator:  deps.Evaluator,
		allocator:  deps.Allocator,
		recorder:   deps.Recorder,
		tx:         deps.Tx,
		queue:      deps.Queue,
		auditQueue: auditQueue,
		clock:      deps.Clock,
		loc:        loc,
	}
}

// pricedOrder is the outcome of pricing, before anything is written.
type pricedOrder struct {
	order    *model.Order
	customer *customer.Snapshot
	chosen   *promoModel.EligiblePromotion
	alloc    promoModel.Allocation
	asOf     time.Time
}

func (s *orderService) QuoteOrder(ctx context.Context, req *model.PriceOrderRequest) (*model.OrderResponse, error) {
	priced, err := s.price(ctx, req)
	if err != nil {
		return nil, err
	}
	return model.ToOrderResponse(priced.order, false), nil
}

func (s *orderService) PriceAndApplyOrder(ctx context.Context, req *model.PriceOrderRequest) (*model.OrderResponse, error) {
	priced, err := s.price(ctx, req)
	if err != nil {
		return nil, err
	}

	order := priced.order
	now := s.clock.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	var usage *promoModel.PromotionUsage
	if priced.chosen != nil {
		usage = promoService.BuildUsage(order.ID, *priced.customer, *priced.chosen, priced.alloc, priced.asOf, now)
	}

	err = s.tx.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.orders.CreateOrderWithTx(ctx, tx, order); err != nil {
			return err
		}
		if err := s.orders.CreateOrderLinesWithTx(ctx, tx, order.Lines); err != nil {
			return err
		}
		if usage != nil {
			return s.recorder.Record(ctx, tx, usage)
		}
		return nil
	})
	if err != nil {
		return nil, apperror.Internal("persist order", err)
	}

	logger.Info("order created", map[string]interface{}{
		"order_id":       order.ID.String(),
		"customer_id":    order.CustomerID.String(),
		"grand_total":    order.GrandTotal.String(),
		"discount_total": order.DiscountTotal.String(),
	})

	if usage != nil {
		s.enqueueAudit(ctx, usage)
	}

	return model.ToOrderResponse(order, true), nil
}

func (s *orderService) price(ctx context.Context, req *model.PriceOrderRequest) (*pricedOrder, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, apperror.Validation(apperror.CodeValidationFailed, "customer_id must be a UUID")
	}
	if len(req.Lines) == 0 {
		return nil, apperror.Validation(apperror.CodeValidationFailed, "order needs at least one line")
	}

	asOf, err := promoService.ResolveAsOf(req.AsOfDate, s.clock, s.loc)
	if err != nil {
		return nil, err
	}

	rawIDs := make([]string, 0, len(req.Lines))
	for _, l := range req.Lines {
		rawIDs = append(rawIDs, l.ServiceID)
	}
	lineIDs, err := promoService.ParseIDs(rawIDs)
	if err != nil {
		return nil, err
	}
	requested := promoService.DedupeIDs(lineIDs)

	defs, err := s.catalog.FindByIDs(ctx, requested)
	if err != nil {
		return nil, apperror.Internal("load services", err)
	}

	order := &model.Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		Status:     model.StatusPending,
		AsOfDate:   utils.CalendarDate(asOf, s.loc),
		Lines:      make([]model.OrderLine, 0, len(req.Lines)+1),
	}

	amounts := make([]promoModel.LineAmount, 0, len(req.Lines))
	for i, l := range req.Lines {
		def, ok := defs[lineIDs[i]]
		if !ok {
			return nil, catalogModel.ErrUnknownService.WithDetail("service_id", lineIDs[i].String())
		}

		lp, err := s.pricer.Price(def, catalogService.LineRequest{
			ServiceID:           def.ID,
			Quantity:            l.Quantity,
			Weight:              l.Weight,
			SelectedOptionName:  l.SelectedOptionName,
			SelectedOptionNames: l.SelectedOptionNames,
		})
		if err != nil {
			return nil, err
		}

		order.Lines = append(order.Lines, model.OrderLine{
			ID:              uuid.New(),
			OrderID:         order.ID,
			ServiceID:       def.ID,
			Quantity:        lp.Quantity,
			SelectedOptions: lp.SelectedOptions,
			UnitPrice:       lp.UnitPrice,
			LineSubtotal:    lp.LineSubtotal,
			Answers:         l.Answers,
			Details:         detailsFor(def, lp.OptionKeys, lp.LineSubtotal),
		})
		amounts = append(amounts, promoModel.LineAmount{ServiceID: def.ID, LineSubtotal: lp.LineSubtotal})
	}

	cust, err := s.customers.FindSnapshot(ctx, customerID)
	if err != nil {
		return nil, err
	}

	chosen, err := s.resolveChosen(ctx, req.ChosenPromotionID, *cust, requested, asOf)
	if err != nil {
		return nil, err
	}

	alloc := s.allocator.Allocate(amounts, chosen)
	for i := range alloc.Lines {
		order.Lines[i].LineDiscount = alloc.Lines[i].LineDiscount
		order.Lines[i].LineTotal = alloc.Lines[i].LineTotal
	}
	order.Subtotal = alloc.Subtotal
	order.DiscountTotal = alloc.DiscountTotal
	order.GrandTotal = alloc.GrandTotal

	if chosen != nil {
		id := chosen.PromotionID
		order.PromotionID = &id
	}

	if alloc.FreeService != nil {
		grant, err := s.grantLine(ctx, order.ID, *alloc.FreeService, defs)
		if err != nil {
			return nil, err
		}
		order.FreeService = alloc.FreeService
		order.Lines = append(order.Lines, grant)
	}

	return &pricedOrder{
		order:    order,
		customer: cust,
		chosen:   chosen,
		alloc:    alloc,
		asOf:     asOf,
	}, nil
}

// resolveChosen reloads the promotion and evaluates it again against this order.
// Whatever an earlier eligibility check said is not trusted.
func (s *orderService) resolveChosen(
	ctx context.Context,
	raw string,
	cust customer.Snapshot,
	requested []uuid.UUID,
	asOf time.Time,
) (*promoModel.EligiblePromotion, error) {
	if raw == "" {
		return nil, nil
	}

	promotionID, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperror.Validation(apperror.CodeValidationFailed, "chosen_promotion_id must be a UUID")
	}

	promo, err := s.promotions.FindByID(ctx, promotionID)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal("load promotion", err)
	}

	chosen, err := s.evaluator.EvaluateOne(cust, requested, asOf, promo)
	if err != nil {
		logger.Info("chosen promotion rejected", map[string]interface{}{
			"promotion_id": promotionID.String(),
			"customer_id":  cust.ID.String(),
			"reason":       err.Error(),
		})
		return nil, apperror.IneligiblePromotion("chosen promotion does not apply to this order", err).
			WithDetail("promotion_id", promotionID.String())
	}
	return chosen, nil
}

// grantLine is the zero-priced line carrying a FreeService reward.
func (s *orderService) grantLine(
	ctx context.Context,
	orderID uuid.UUID,
	grant promoModel.FreeServiceGrant,
	loaded map[uuid.UUID]*catalogModel.ServiceDefinition,
) (model.OrderLine, error) {
	def, ok := loaded[grant.ServiceID]
	if !ok {
		var err error
		def, err = s.catalog.FindByID(ctx, grant.ServiceID)
		if err != nil {
			if apperror.IsKind(err, apperror.KindNotFound) {
				return model.OrderLine{}, err
			}
			return model.OrderLine{}, apperror.Internal("load granted service", err)
		}
	}

	return model.OrderLine{
		ID:               uuid.New(),
		OrderID:          orderID,
		ServiceID:        def.ID,
		Quantity:         decimal.NewFromInt(int64(grant.Quantity)),
		UnitPrice:        decimal.Zero,
		LineSubtotal:     decimal.Zero,
		LineDiscount:     decimal.Zero,
		LineTotal:        decimal.Zero,
		IsPromotionGrant: true,
		Details:          detailsFor(def, nil, decimal.Zero),
	}, nil
}

func detailsFor(def *catalogModel.ServiceDefinition, optionKeys []uuid.UUID, subtotal decimal.Decimal) model.LineDetails {
	return model.LineDetails{
		ServiceName:  def.Name,
		Variant:      string(def.Variant),
		UnitLabel:    def.UnitLabel,
		OptionKeys:   optionKeys,
		LineSubtotal: subtotal,
	}
}

// enqueueAudit runs after commit. A failure here is logged only; the usage row already exists.
func (s *orderService) enqueueAudit(ctx context.Context, usage *promoModel.PromotionUsage) {
	if s.queue == nil {
		return
	}

	payload := shared.AuditUsagePayload{
		UsageID:     usage.ID.String(),
		CustomerID:  usage.CustomerID.String(),
		PromotionID: usage.PromotionID.String(),
		OrderID:     usage.OrderID.String(),
		ClientIP:    utils.ClientIPFromContext(ctx),
		AppliedAt:   usage.CreatedAt,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal audit payload", err)
		return
	}

	task := asynq.NewTask(shared.TypeAuditPromotionUsage, b)
	if _, err := s.queue.Enqueue(task, asynq.Queue(s.auditQueue), asynq.MaxRetry(3)); err != nil {
		logger.Error("Failed to enqueue promotion usage audit", err)
	}
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return model.ToOrderResponse(order, true), nil
}

func (s *orderService) MarkPaid(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	return s.transition(ctx, id, model.StatusPaid)
}

func (s *orderService) Cancel(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	return s.transition(ctx, id, model.StatusCancelled)
}

// transition only touches status and updated_at. Pricing and usage stay as committed.
func (s *orderService) transition(ctx context.Context, id uuid.UUID, next model.Status) (*model.OrderResponse, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	from := order.Status
	now := s.clock.Now()
	if err := order.TransitionTo(next, now); err != nil {
		return nil, err
	}

	if err := s.orders.UpdateStatus(ctx, id, from, next, now); err != nil {
		if _, ok := apperror.As(err); ok {
			return nil, err
		}
		return nil, apperror.Internal("update order status", err)
	}

	logger.Info("order status changed", map[string]interface{}{
		"order_id": id.String(),
		"from":     string(from),
		"to":       string(next),
	})

	return model.ToOrderResponse(order, true), nil
}

func (s *orderService) load(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal("load order", err)
	}

	lines, err := s.orders.GetOrderLines(ctx, id)
	if err != nil {
		return nil, apperror.Internal("load order lines", err)
	}
	order.Lines = lines
	return order, nil
}
