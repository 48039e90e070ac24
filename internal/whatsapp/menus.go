// README: Fixed interactive menus of the self-service flows.
package whatsapp

import "context"

// MenuSender exposes the canned menus on top of the raw list sender.
type MenuSender interface {
	SendMainMenu(ctx context.Context, to string) error
	SendParentsMenu(ctx context.Context, to string) error
	SendSemedMenu(ctx context.Context, to string) error
	SendSchoolMenu(ctx context.Context, to string) error
}

func (c *Client) SendMainMenu(ctx context.Context, to string) error {
	return c.SendList(ctx, to, List{
		Header:       "🚍 Olá! Bem-vindo(a) ao nosso Sistema de Autoatendimento!",
		Body:         "Em que podemos ajudar hoje? Selecione uma das opções abaixo para continuar:",
		Footer:       "Atendimento Automatizado",
		ButtonLabel:  "Ver Opções",
		SectionTitle: "Opções de Atendimento",
		Rows: []ListRow{
			{ID: "option_1", Title: "1️⃣ Pais e Alunos", Description: "Informações exclusivas para Pais/Responsáveis"},
			{ID: "option_2", Title: "2️⃣ Servidores SEMED", Description: "Informações para Servidores da SEMED"},
			{ID: "option_3", Title: "3️⃣ Servidores Escola", Description: "Informações para Equipe da Escola"},
			{ID: "option_4", Title: "4️⃣ Fornecedores", Description: "Solicitações e Informações para Fornecedores"},
			{ID: "option_5", Title: "5️⃣ Motoristas", Description: "Solicitações e Informações para Motoristas"},
			{ID: "option_6", Title: "6️⃣ Encerrar Atendimento", Description: "Finalizar o atendimento"},
		},
	})
}

func (c *Client) SendParentsMenu(ctx context.Context, to string) error {
	return c.SendList(ctx, to, List{
		Header:       "👨‍👩‍👧 Pais e Responsáveis",
		Body:         "Olá! Por favor, selecione uma opção abaixo para continuar:",
		Footer:       "Como podemos ajudar?",
		ButtonLabel:  "Ver Opções",
		SectionTitle: "Opções Disponíveis",
		Rows: []ListRow{
			{ID: "parents_option_1", Title: "1️⃣ Ponto de Parada", Description: "Encontre o ponto de parada mais próximo"},
			{ID: "parents_option_2", Title: "2️⃣ Concessão Rota", Description: "Inicie a solicitação de transporte escolar"},
			{ID: "parents_option_3", Title: "3️⃣ Fazer Informe", Description: "Registre sua denúncia, elogio ou sugestão"},
			{ID: "parents_option_4", Title: "4️⃣ Atendente", Description: "Converse com um atendente humano"},
			{ID: "parents_option_5", Title: "5️⃣ Voltar", Description: "Retornar ao menu principal"},
			{ID: "parents_option_6", Title: "6️⃣ Encerrar", Description: "Finalizar o atendimento"},
		},
	})
}

func (c *Client) SendSemedMenu(ctx context.Context, to string) error {
	return c.SendList(ctx, to, List{
		Header:       "👩‍🏫 Servidores SEMED",
		Body:         "Selecione a opção que melhor atende sua necessidade:",
		Footer:       "Como podemos ajudar?",
		ButtonLabel:  "Ver Opções",
		SectionTitle: "Necessidades",
		Rows: []ListRow{
			{ID: "request_driver", Title: "1️⃣ Solicitar Motorista", Description: "Abra um chamado de transporte"},
			{ID: "speak_to_agent", Title: "2️⃣ Falar com Atendente", Description: "Converse com um atendente humano"},
			{ID: "end_service", Title: "3️⃣ Encerrar Chamado", Description: "Finalizar o atendimento"},
			{ID: "back_to_menu", Title: "4️⃣ Menu Anterior", Description: "Retornar ao menu principal"},
		},
	})
}

func (c *Client) SendSchoolMenu(ctx context.Context, to string) error {
	return c.SendList(ctx, to, List{
		Header:       "🏫 Servidores da Escola",
		Body:         "Selecione a opção desejada para continuar:",
		Footer:       "Como podemos ajudar?",
		ButtonLabel:  "Ver Opções",
		SectionTitle: "Funções Disponíveis",
		Rows: []ListRow{
			{ID: "school_option_1", Title: "1️⃣ Solicitar Carro", Description: "Precisa de um carro para a escola?"},
			{ID: "school_option_2", Title: "2️⃣ Enviar Informe", Description: "Registre Elogios, Reclamações ou Feedback"},
			{ID: "school_option_3", Title: "3️⃣ Atendente", Description: "Falar com atendente humano (adm)"},
			{ID: "school_option_5", Title: "4️⃣ Encerrar", Description: "Finalizar o atendimento"},
		},
	})
}
