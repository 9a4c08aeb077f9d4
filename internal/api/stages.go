package api

import "context"

// --- Stage Methods ---

func (c *Client) ListStages(seasonID string) ([]Stage, error) {
	return c.listStages(context.Background(), seasonID)
}

func (c *Client) listStages(ctx context.Context, seasonID string) ([]Stage, error) {
	data, err := c.getContext(ctx, "/seasons/"+escape(seasonID)+"/stages")
	if err != nil {
		return nil, err
	}
	return decodeList[Stage](data)
}

func (c *Client) GetStage(id string) (*Stage, error) {
	data, err := c.get("/stages/" + escape(id))
	if err != nil {
		return nil, err
	}
	return decodeOne[Stage](data)
}

func (c *Client) CreateStage(input StageInput) (*Stage, error) {
	data, err := c.post("/stages", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Stage](data)
}

func (c *Client) UpdateStage(id string, input StageInput) (*Stage, error) {
	data, err := c.put("/stages/"+escape(id), input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Stage](data)
}
