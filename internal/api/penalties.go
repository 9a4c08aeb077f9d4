package api

// --- Penalty Methods ---

func (c *Client) ListPenalties(seasonID string, params QueryParams) ([]Penalty, error) {
	data, err := c.get(buildQuery("/penalties/season/"+escape(seasonID), params))
	if err != nil {
		return nil, err
	}
	return decodeList[Penalty](data)
}

func (c *Client) GetPenalty(id string) (*Penalty, error) {
	data, err := c.get("/penalties/" + escape(id))
	if err != nil {
		return nil, err
	}
	return decodeOne[Penalty](data)
}

func (c *Client) CreatePenalty(input PenaltyInput) (*Penalty, error) {
	data, err := c.post("/penalties", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Penalty](data)
}

func (c *Client) UpdatePenalty(id string, input PenaltyInput) (*Penalty, error) {
	data, err := c.put("/penalties/"+escape(id), input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Penalty](data)
}
