package cli

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/spec-kit/employee-tracker/internal/domain"
)

func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func departmentRows(depts []domain.Department) [][]string {
	rows := make([][]string, 0, len(depts))
	for _, d := range depts {
		rows = append(rows, []string{formatID(d.ID), d.Name})
	}
	return rows
}

func roleRows(roles []domain.RoleDetail) [][]string {
	rows := make([][]string, 0, len(roles))
	for _, r := range roles {
		rows = append(rows, []string{formatID(r.ID), r.Title, domain.FormatSalary(r.Salary), r.Department})
	}
	return rows
}

func employeeRows(employees []domain.EmployeeDetail) [][]string {
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, []string{
			formatID(e.ID),
			e.FirstName,
			e.LastName,
			e.Title,
			e.Department,
			domain.FormatSalary(e.Salary),
		})
	}
	return rows
}
