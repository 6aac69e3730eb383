package postgres

import "github.com/orderdesk/orderdesk/internal/domain"

func toDomainUser(model userModel) domain.User {
	return domain.User{
		UserID:     model.UserID,
		TelegramID: model.TelegramID,
		Name:       model.Name,
		Username:   model.Username,
		CreatedAt:  model.CreatedAt,
	}
}

func toDomainClient(model clientModel) domain.Client {
	return domain.Client{
		ClientID:  model.ClientID,
		UserID:    model.UserID,
		Name:      model.Name,
		Contact:   model.Contact,
		Source:    model.Source,
		CreatedAt: model.CreatedAt,
	}
}

func toDomainOrder(model orderModel) domain.Order {
	order := domain.Order{
		OrderID:   model.OrderID,
		UserID:    model.UserID,
		ClientID:  model.ClientID,
		Title:     model.Title,
		Budget:    model.Budget,
		Status:    domain.OrderStatus(model.Status),
		Deadline:  model.Deadline,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if model.Client != nil {
		client := toDomainClient(*model.Client)
		order.Client = &client
	}
	return order
}

func toDomainTask(model taskModel) domain.Task {
	return domain.Task{
		TaskID:   model.TaskID,
		OrderID:  model.OrderID,
		Title:    model.Title,
		Done:     model.Done,
		Position: model.Position,
	}
}

func toDomainNote(model noteModel) domain.OrderNote {
	return domain.OrderNote{
		NoteID:    model.NoteID,
		OrderID:   model.OrderID,
		Text:      model.Text,
		CreatedAt: model.CreatedAt,
	}
}

func toDomainTemplate(model templateModel) domain.MessageTemplate {
	return domain.MessageTemplate{
		TemplateID: model.TemplateID,
		UserID:     model.UserID,
		Title:      model.Title,
		Body:       model.Body,
		CreatedAt:  model.CreatedAt,
	}
}

func toDomainReminder(model reminderModel, orderTitle string) domain.Reminder {
	return domain.Reminder{
		ReminderID: model.ReminderID,
		OrderID:    model.OrderID,
		RemindAt:   model.RemindAt,
		Sent:       model.Sent,
		Channel:    model.Channel,
		CreatedAt:  model.CreatedAt,
		OrderTitle: orderTitle,
	}
}
