package notification

import (
	"fmt"
	"strings"
)

// AdminAddress adalah alamat simbolik; Enqueuer menggantinya dengan alamat admin yang dikonfigurasi.
const AdminAddress = "admin"

type Message struct {
	Address string
	Subject string
	Body    string
}

func LeaveSubmitted(employeeEmail, employeeName, leaveType, startDate string, days int) []Message {
	body := fmt.Sprintf("%s applied for %d day(s) of %s starting %s.", employeeName, days, leaveType, startDate)
	return []Message{
		{
			Address: employeeEmail,
			Subject: "Leave Request Received",
			Body:    fmt.Sprintf("Hi %s, your %s request for %d day(s) starting %s is pending review.", employeeName, leaveType, days, startDate),
		},
		{
			Address: AdminAddress,
			Subject: "New Leave Request",
			Body:    body,
		},
	}
}

// LeaveDecided builds the outcome message. remaining is nil when the request was rejected.
func LeaveDecided(employeeEmail, employeeName, status, leaveType string, days int, remaining *int) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s, your %s request for %d day(s) has been %s.", employeeName, leaveType, days, strings.ToLower(status))
	if remaining != nil {
		fmt.Fprintf(&b, " Remaining balance: %d day(s).", *remaining)
	}
	return Message{
		Address: employeeEmail,
		Subject: "Leave " + status,
		Body:    b.String(),
	}
}

func LoanSubmitted(employeeEmail, employeeName, amount string) []Message {
	return []Message{
		{
			Address: employeeEmail,
			Subject: "Loan Request Received",
			Body:    fmt.Sprintf("Hi %s, your loan request of %s is pending review.", employeeName, amount),
		},
		{
			Address: AdminAddress,
			Subject: "New Loan Request",
			Body:    fmt.Sprintf("%s requested a loan of %s.", employeeName, amount),
		},
	}
}

func LoanDecided(employeeEmail, employeeName, status, amount string) Message {
	return Message{
		Address: employeeEmail,
		Subject: "Loan " + status,
		Body:    fmt.Sprintf("Hi %s, your loan request of %s has been %s.", employeeName, amount, strings.ToLower(status)),
	}
}

func PayrollPosted(employeeEmail, employeeName, period, net string) Message {
	return Message{
		Address: employeeEmail,
		Subject: "Payslip Posted for " + period,
		Body:    fmt.Sprintf("Hi %s, your payslip for %s has been posted. Net pay: %s.", employeeName, period, net),
	}
}

func Welcome(employeeEmail, employeeName string) Message {
	return Message{
		Address: employeeEmail,
		Subject: "Welcome to HR Portal",
		Body:    fmt.Sprintf("Hi %s, your employee account has been created.", employeeName),
	}
}
