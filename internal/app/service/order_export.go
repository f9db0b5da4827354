package service

import (
	"fmt"
	"strings"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/xuri/excelize/v2"
)

const ordersSheet = "Заказы"

var orderExportHeader = []interface{}{
	"Номер", "Дата", "Клиент", "Телефон", "Доставка", "Адрес", "Товары",
	"Подытог", "Скидка", "Стоимость доставки", "Итого", "Промокод", "Статус", "Оплата",
}

// ExportOrders renders orders as a single sheet workbook. The caller closes the file.
func ExportOrders(orders []model.Order) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), ordersSheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetRow(ordersSheet, "A1", &orderExportHeader); err != nil {
		f.Close()
		return nil, err
	}
	if bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(ordersSheet, 1, 1, bold)
	}
	_ = f.SetColWidth(ordersSheet, "A", "N", 18)

	for i, o := range orders {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := orderExportRow(o)
		if err := f.SetSheetRow(ordersSheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("order %s: %w", o.ID, err)
		}
	}
	return f, nil
}

func orderExportRow(o model.Order) []interface{} {
	items := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, fmt.Sprintf("%s × %d", item.DisplayName(), item.Quantity))
	}

	promo := ""
	if o.PromoCode != nil {
		promo = o.PromoCode.Code
	}
	created := ""
	if !o.CreatedAt.IsZero() {
		created = o.CreatedAt.Format("02.01.2006 15:04")
	}

	return []interface{}{
		string(o.OrderNumber),
		created,
		o.CustomerName,
		o.CustomerPhone,
		o.DeliveryTypeOrDefault(),
		o.DeliveryAddress,
		strings.Join(items, ", "),
		o.Subtotal.InexactFloat64(),
		o.Discount.InexactFloat64(),
		o.DeliveryFee.InexactFloat64(),
		o.Total.InexactFloat64(),
		promo,
		o.Status.Label(),
		o.PaymentStatus.Label(),
	}
}
