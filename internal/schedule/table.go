package schedule

// Row is one transaction's line of a schedule table. Cells has one entry per
// schedule position; positions owned by the other transaction are nil.
type Row struct {
	Txn   TxnID
	Cells []*Operation
}

// Table is the two-row presentation of a schedule.
type Table struct {
	Rows [2]Row
}

// ToTable lays a schedule out as a two-row table keyed by transaction.
func ToTable(s Schedule) Table {
	t := Table{
		Rows: [2]Row{
			{Txn: T1, Cells: make([]*Operation, len(s))},
			{Txn: T2, Cells: make([]*Operation, len(s))},
		},
	}
	for i := range s {
		op := s[i]
		row := 0
		if op.Txn == T2 {
			row = 1
		}
		t.Rows[row].Cells[i] = &op
	}
	return t
}

// Columns returns the number of schedule positions.
func (t Table) Columns() int {
	return len(t.Rows[0].Cells)
}
