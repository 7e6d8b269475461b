package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rifat2413010/e-commerce-bloom/controllers/respond"
	"github.com/tealeg/xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GET /admin/orders/export
//
// Accepts the same filters as GET /admin/orders.
func ExportOrdersToExcel(repo OrderReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := orderFilter(c)
		if !ok {
			return
		}
		list, err := repo.ListOrders(c.Request.Context(), filter)
		if err != nil {
			respond.Internal(c, "Failed to fetch orders", err)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			respond.Internal(c, "Failed to create Excel sheet", err)
			return
		}
		addHeader(sheet, "Order Number", "Customer", "Phone", "Address", "Subtotal", "Delivery", "Total", "Status", "Date")
		for _, o := range list {
			row := sheet.AddRow()
			row.AddCell().SetString(o.OrderNumber)
			row.AddCell().SetString(o.CustomerName)
			row.AddCell().SetString(o.CustomerPhone)
			row.AddCell().SetString(o.CustomerAddress)
			row.AddCell().SetFloat(o.Subtotal.InexactFloat64())
			row.AddCell().SetFloat(o.DeliveryCharge.InexactFloat64())
			row.AddCell().SetFloat(o.TotalAmount.InexactFloat64())
			row.AddCell().SetString(string(o.Status))
			row.AddCell().SetString(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		writeWorkbook(c, file, "orders.xlsx")
	}
}

// GET /admin/customers/export
func ExportCustomersToExcel(repo OrderReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		customers, err := repo.ListCustomers(c.Request.Context(), c.Query("search"))
		if err != nil {
			respond.Internal(c, "Failed to fetch customers", err)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Customers")
		if err != nil {
			respond.Internal(c, "Failed to create Excel sheet", err)
			return
		}
		addHeader(sheet, "Name", "Phone", "Email", "Address", "Orders", "Total Spent", "Joined")
		for _, cu := range customers {
			row := sheet.AddRow()
			row.AddCell().SetString(cu.Name)
			row.AddCell().SetString(cu.Phone)
			row.AddCell().SetString(deref(cu.Email))
			row.AddCell().SetString(deref(cu.Address))
			row.AddCell().SetInt64(cu.OrderCount)
			row.AddCell().SetFloat(cu.TotalSpent.InexactFloat64())
			row.AddCell().SetString(cu.CreatedAt.Format("2006-01-02"))
		}
		writeWorkbook(c, file, "customers.xlsx")
	}
}

func addHeader(sheet *xlsx.Sheet, headers ...string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetString(h)
	}
}

func writeWorkbook(c *gin.Context, file *xlsx.File, name string) {
	c.Header("Content-Disposition", "attachment; filename="+name)
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")
	c.Status(http.StatusOK)
	if err := file.Write(c.Writer); err != nil {
		respond.Internal(c, "Failed to write Excel file", err)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
