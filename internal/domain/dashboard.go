package domain

// Dashboard is the combined landing-page payload, assembled from
// concurrent backend fetches so the UI renders in one round trip.
type Dashboard struct {
	Overview  *SpendOverview   `json:"overview"`
	Breakdown BreakdownView    `json:"breakdown"`
	Budgets   []BudgetView     `json:"budgets"`
	Goals     []GoalView       `json:"goals"`
	Recurring RecurringSummary `json:"recurring"`
	Alerts    AlertListView    `json:"alerts"`
}
