package services

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/Rakhulsr/khayal-shop/app/repositories"
	"github.com/tealeg/xlsx"
)

const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportTimeFmt   = "2006-01-02 15:04:05"
)

type ExportService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepositoryImpl
}

func NewExportService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepositoryImpl) *ExportService {
	return &ExportService{orderRepo: orderRepo, productRepo: productRepo}
}

func (s *ExportService) WriteOrders(ctx context.Context, w io.Writer) error {
	orders, err := s.orderRepo.GetAllOrders(ctx)
	if err != nil {
		log.Printf("ExportService.WriteOrders: failed to load orders: %v", err)
		return storeError("load orders", "order", "", err)
	}

	file, err := BuildOrdersWorkbook(orders)
	if err != nil {
		return err
	}
	return file.Write(w)
}

func (s *ExportService) WriteProducts(ctx context.Context, w io.Writer) error {
	products, err := s.productRepo.GetProducts(ctx)
	if err != nil {
		log.Printf("ExportService.WriteProducts: failed to load products: %v", err)
		return storeError("load products", "product", "", err)
	}

	file, err := BuildProductsWorkbook(products)
	if err != nil {
		return err
	}
	return file.Write(w)
}

func BuildOrdersWorkbook(orders []models.Order) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return nil, fmt.Errorf("failed to create orders sheet: %w", err)
	}

	addHeaderRow(sheet, "Order Number", "Date", "Customer", "Email", "Phone", "Address",
		"Items", "Total", "Status", "Notes")

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetString(o.OrderNumber)
		row.AddCell().SetString(o.CreatedAt.Format(exportTimeFmt))
		row.AddCell().SetString(o.CustomerName)
		row.AddCell().SetString(o.CustomerEmail)
		row.AddCell().SetString(o.CustomerPhone)
		row.AddCell().SetString(o.CustomerAddress)

		count := 0
		for _, item := range o.Items {
			count += item.Quantity
		}
		row.AddCell().SetInt(count)

		total, _ := o.Total.Float64()
		row.AddCell().SetFloat(total)
		row.AddCell().SetString(o.Status)
		row.AddCell().SetString(o.OrderNotes)
	}
	return file, nil
}

func BuildProductsWorkbook(products []models.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, fmt.Errorf("failed to create products sheet: %w", err)
	}

	addHeaderRow(sheet, "ID", "Name", "Category", "Price", "Stock", "Image", "CreatedAt", "UpdatedAt")

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Category)
		price, _ := p.Price.Float64()
		row.AddCell().SetFloat(price)
		row.AddCell().SetInt(p.Stock)
		row.AddCell().SetString(p.ImageURL)
		row.AddCell().SetString(p.CreatedAt.Format(exportTimeFmt))
		row.AddCell().SetString(p.UpdatedAt.Format(exportTimeFmt))
	}
	return file, nil
}

func addHeaderRow(sheet *xlsx.Sheet, headers ...string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetString(h)
	}
}
