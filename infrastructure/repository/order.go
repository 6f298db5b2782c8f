package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/dlourenco/business-ops-api/infrastructure/database/postgres"
	"github.com/dlourenco/business-ops-api/internal/domain"
)

const (
	ordersTable         = "orders"
	orderItemsTable     = "order_items"
	additionalFeesTable = "additional_fees"
)

type OrderRepository interface {
	// ListOrders retorna os pedidos mais recentes (created_at desc) com itens
	// e taxas. limit <= 0 retorna todos os pedidos.
	ListOrders(limit int) ([]*domain.Order, error)
	GetOrderByID(id string) (*domain.Order, error)
	CreateOrder(order *domain.Order) error
	UpdateOrder(order *domain.Order) error
	UpdateOrderCompletion(id string, isCompleted bool) error
	DeleteOrder(id string) (int64, error)

	// ListCompletedOrders retorna todos os pedidos concluídos, sem itens nem
	// taxas. Usado pela reconstrução de métricas, que só precisa dos totais.
	ListCompletedOrders() ([]*domain.Order, error)

	// Agregações por janela de tempo usadas pelo cálculo de tendências.
	// As janelas são [start, end).
	SumCompletedOrderAmounts(start, end time.Time) (float64, error)
	CountOrders(start, end time.Time) (int, error)
	CountDistinctCustomers(start, end time.Time) (int, error)
}

type orderRepository struct {
	conn *postgres.Connection
}

func NewOrderRepository(conn *postgres.Connection) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

const orderColumns = "o.id, o.customer_name, o.description, o.address, o.delivery_time, o.is_completed, o.total_amount, o.created_at, o.updated_at"

func (r *orderRepository) ListOrders(limit int) ([]*domain.Order, error) {
	queryBuilder := squirrel.
		Select(orderColumns).
		From(ordersTable + " o").
		OrderBy("o.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if limit > 0 {
		queryBuilder = queryBuilder.Limit(uint64(limit))
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear pedido: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	if err := r.loadOrderChildren(orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) GetOrderByID(id string) (*domain.Order, error) {
	query, args, err := squirrel.
		Select(orderColumns).
		From(ordersTable + " o").
		Where(squirrel.Eq{"o.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	order := &domain.Order{}
	err = row.Scan(
		&order.ID,
		&order.CustomerName,
		&order.Description,
		&order.Address,
		&order.DeliveryTime,
		&order.IsCompleted,
		&order.TotalAmount,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear pedido: %w", err)
	}

	if err := r.loadOrderChildren([]*domain.Order{order}); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) CreateOrder(order *domain.Order) error {
	return r.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		orderSQL, orderArgs, err := squirrel.
			Insert(ordersTable).
			Columns("id", "customer_name", "description", "address", "delivery_time", "is_completed", "total_amount").
			Values(order.ID, order.CustomerName, order.Description, order.Address, order.DeliveryTime, order.IsCompleted, order.TotalAmount).
			Suffix("RETURNING created_at, updated_at").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		err = tx.QueryRow(orderSQL, orderArgs...).Scan(&order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return fmt.Errorf("erro ao inserir pedido: %w", err)
		}

		for _, item := range order.OrderItems {
			itemSQL, itemArgs, err := squirrel.
				Insert(orderItemsTable).
				Columns("id", "order_id", "name", "quantity", "unit_price", "total_price").
				Values(item.ID, order.ID, item.Name, item.Quantity, item.UnitPrice, item.TotalPrice).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			if _, err := tx.Exec(itemSQL, itemArgs...); err != nil {
				return fmt.Errorf("erro ao inserir item do pedido: %w", err)
			}
		}

		for _, fee := range order.AdditionalFees {
			feeSQL, feeArgs, err := squirrel.
				Insert(additionalFeesTable).
				Columns("id", "order_id", "name", "amount").
				Values(fee.ID, order.ID, fee.Name, fee.Amount).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			if _, err := tx.Exec(feeSQL, feeArgs...); err != nil {
				return fmt.Errorf("erro ao inserir taxa adicional: %w", err)
			}
		}

		return nil
	})
}

func (r *orderRepository) UpdateOrder(order *domain.Order) error {
	queryBuilder := squirrel.
		Update(ordersTable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": order.ID})

	if order.CustomerName != "" {
		queryBuilder = queryBuilder.Set("customer_name", order.CustomerName)
	}

	if order.Description != nil {
		queryBuilder = queryBuilder.Set("description", order.Description)
	}

	if order.Address != "" {
		queryBuilder = queryBuilder.Set("address", order.Address)
	}

	if !order.DeliveryTime.IsZero() {
		queryBuilder = queryBuilder.Set("delivery_time", order.DeliveryTime)
	}

	query, args, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *orderRepository) UpdateOrderCompletion(id string, isCompleted bool) error {
	query, args, err := squirrel.
		Update(ordersTable).
		Set("is_completed", isCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *orderRepository) DeleteOrder(id string) (int64, error) {
	query, args, err := squirrel.
		Delete(ordersTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *orderRepository) ListCompletedOrders() ([]*domain.Order, error) {
	query, args, err := squirrel.
		Select(orderColumns).
		From(ordersTable + " o").
		Where(squirrel.Eq{"o.is_completed": true}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear pedido: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) SumCompletedOrderAmounts(start, end time.Time) (float64, error) {
	query, args, err := squirrel.
		Select("COALESCE(SUM(total_amount), 0)").
		From(ordersTable).
		Where(squirrel.Eq{"is_completed": true}).
		Where(squirrel.GtOrEq{"created_at": start}).
		Where(squirrel.Lt{"created_at": end}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total float64
	if err := r.conn.QueryRow(query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("erro ao somar pedidos concluídos: %w", err)
	}

	return total, nil
}

func (r *orderRepository) CountOrders(start, end time.Time) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(ordersTable).
		Where(squirrel.GtOrEq{"created_at": start}).
		Where(squirrel.Lt{"created_at": end}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar pedidos: %w", err)
	}

	return count, nil
}

func (r *orderRepository) CountDistinctCustomers(start, end time.Time) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(DISTINCT customer_name)").
		From(ordersTable).
		Where(squirrel.GtOrEq{"created_at": start}).
		Where(squirrel.Lt{"created_at": end}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar clientes distintos: %w", err)
	}

	return count, nil
}

// loadOrderChildren carrega itens e taxas de um conjunto de pedidos em duas
// queries, preservando a ordem de inserção dos filhos
func (r *orderRepository) loadOrderChildren(orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ordersByID := make(map[string]*domain.Order, len(orders))
	orderIDs := make([]string, 0, len(orders))
	for _, order := range orders {
		order.OrderItems = make([]*domain.OrderItem, 0)
		order.AdditionalFees = make([]*domain.AdditionalFee, 0)
		ordersByID[order.ID] = order
		orderIDs = append(orderIDs, order.ID)
	}

	itemsSQL, itemsArgs, err := squirrel.
		Select("id, order_id, name, quantity, unit_price, total_price").
		From(orderItemsTable).
		Where(squirrel.Eq{"order_id": orderIDs}).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	itemRows, err := r.conn.Query(itemsSQL, itemsArgs...)
	if err != nil {
		return fmt.Errorf("erro ao buscar itens dos pedidos: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		item := &domain.OrderItem{}
		err := itemRows.Scan(&item.ID, &item.OrderID, &item.Name, &item.Quantity, &item.UnitPrice, &item.TotalPrice)
		if err != nil {
			return fmt.Errorf("erro ao escanear item do pedido: %w", err)
		}

		if order, ok := ordersByID[item.OrderID]; ok {
			order.OrderItems = append(order.OrderItems, item)
		}
	}

	if err = itemRows.Err(); err != nil {
		return fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	feesSQL, feesArgs, err := squirrel.
		Select("id, order_id, name, amount").
		From(additionalFeesTable).
		Where(squirrel.Eq{"order_id": orderIDs}).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	feeRows, err := r.conn.Query(feesSQL, feesArgs...)
	if err != nil {
		return fmt.Errorf("erro ao buscar taxas dos pedidos: %w", err)
	}
	defer feeRows.Close()

	for feeRows.Next() {
		fee := &domain.AdditionalFee{}
		err := feeRows.Scan(&fee.ID, &fee.OrderID, &fee.Name, &fee.Amount)
		if err != nil {
			return fmt.Errorf("erro ao escanear taxa adicional: %w", err)
		}

		if order, ok := ordersByID[fee.OrderID]; ok {
			order.AdditionalFees = append(order.AdditionalFees, fee)
		}
	}

	if err = feeRows.Err(); err != nil {
		return fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return nil
}

func scanOrder(rows *sql.Rows) (*domain.Order, error) {
	order := &domain.Order{}
	err := rows.Scan(
		&order.ID,
		&order.CustomerName,
		&order.Description,
		&order.Address,
		&order.DeliveryTime,
		&order.IsCompleted,
		&order.TotalAmount,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return order, nil
}
