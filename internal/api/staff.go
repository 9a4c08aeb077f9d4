package api

// --- Staff Methods ---

func staffPath(championshipID string) string {
	return "/championships/" + escape(championshipID) + "/staff"
}

func (c *Client) ListStaff(championshipID string) ([]StaffMember, error) {
	data, err := c.get(staffPath(championshipID))
	if err != nil {
		return nil, err
	}
	return decodeList[StaffMember](data)
}

func (c *Client) GetStaffMember(championshipID, id string) (*StaffMember, error) {
	data, err := c.get(staffPath(championshipID) + "/" + escape(id))
	if err != nil {
		return nil, err
	}
	return decodeOne[StaffMember](data)
}

func (c *Client) AddStaffMember(championshipID string, input StaffInput) (*StaffMember, error) {
	data, err := c.post(staffPath(championshipID), input)
	if err != nil {
		return nil, err
	}
	return decodeOne[StaffMember](data)
}

func (c *Client) UpdateStaffPermissions(championshipID, id string, input StaffInput) (*StaffMember, error) {
	input.Email = ""
	data, err := c.put(staffPath(championshipID)+"/"+escape(id)+"/permissions", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[StaffMember](data)
}
