package records

import sdk "github.com/xataconnect/sdk"

// Transaction accumulates operations and submits them as one batch. It is a
// convenience over Client.Transaction; operations run in order and the batch
// either fully applies or fully fails on the server side.
type Transaction struct {
	client     *RecordsClient
	operations []map[string]any
}

// NewTransaction returns an empty transaction bound to the client.
func (c *RecordsClient) NewTransaction() *Transaction {
	return &Transaction{client: c}
}

// Insert queues an insert operation. An empty recordID lets the server
// assign one.
func (t *Transaction) Insert(table, recordID string, record map[string]any) *Transaction {
	op := map[string]any{"table": table, "record": record}
	if recordID != "" {
		op["id"] = recordID
	}
	t.operations = append(t.operations, map[string]any{"insert": op})
	return t
}

// Update queues a partial update of the record stored under recordID.
func (t *Transaction) Update(table, recordID string, fields map[string]any) *Transaction {
	t.operations = append(t.operations, map[string]any{
		"update": map[string]any{"table": table, "id": recordID, "fields": fields},
	})
	return t
}

// Delete queues removal of the record stored under recordID.
func (t *Transaction) Delete(table, recordID string) *Transaction {
	t.operations = append(t.operations, map[string]any{
		"delete": map[string]any{"table": table, "id": recordID},
	})
	return t
}

// Get queues a read of the record stored under recordID.
func (t *Transaction) Get(table, recordID string, columns []string) *Transaction {
	op := map[string]any{"table": table, "id": recordID}
	if len(columns) > 0 {
		op["columns"] = columns
	}
	t.operations = append(t.operations, map[string]any{"get": op})
	return t
}

// Size returns the number of queued operations.
func (t *Transaction) Size() int { return len(t.operations) }

// Run submits the queued operations and clears the transaction on success.
func (t *Transaction) Run() (*sdk.Response, error) {
	resp, err := t.client.Transaction(t.operations)
	if err != nil {
		return nil, err
	}
	t.operations = nil
	return resp, nil
}
